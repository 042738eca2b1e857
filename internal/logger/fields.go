package logger

type LoggingDetail interface{ addTo(logEntry) }

type logEntry map[string]any

func (e logEntry) Merge(oth logEntry) {
	for k, v := range oth {
		if _, ok := e[k]; ok {
			continue // closer context wins
		}
		e[k] = v
	}
}

func Field(key string, value any) LoggingDetail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(e logEntry) { e[f.Key] = f.Value }

type Fields map[string]any

func (fields Fields) addTo(e logEntry) {
	for k, v := range fields {
		e[k] = v
	}
}

func ErrField(err error) LoggingDetail {
	if err == nil {
		return nullLoggingDetail{}
	}
	return Field("error", Fields{"message": err.Error()})
}

type nullLoggingDetail struct{}

func (nullLoggingDetail) addTo(logEntry) {}
