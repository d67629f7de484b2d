package reactive

// DebugMode enables dev-time validation of hook order.
// When true, a component that calls a different sequence of hooks than on
// its first render panics with a *errors.HookError (E002).
//
// Set this at startup and do not change it while components are mounted:
//
//	func main() {
//	    reactive.DebugMode = os.Getenv("UIHOOKS_DEV") == "1"
//	    // ...
//	}
var DebugMode bool

// DefaultQueueSize is the dispatch queue capacity used when no
// WithQueueSize option is given.
const DefaultQueueSize = 1024
