package client

// ReadyState：一次请求的就绪阶段，只会单向推进
type ReadyState int

const (
	Unsent ReadyState = iota
	Opened
	HeadersReceived
	Loading
	Done
)

func (s ReadyState) String() string {
	switch s {
	case Unsent:
		return "unsent"
	case Opened:
		return "opened"
	case HeadersReceived:
		return "headers_received"
	case Loading:
		return "loading"
	case Done:
		return "done"
	}
	return "unknown"
}
