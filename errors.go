package streams

import "github.com/adamluzsi/streams/internal/errorkit"

// ErrStreamMoved is reported by a Stream that was already used to derive another Stream.
const ErrStreamMoved errorkit.Error = "stream has been moved into a derived stream"
