// Package errors provides structured, actionable error messages for uihooks.
//
// Hook misuse (a hook called outside a render, a hook order that changes
// between renders) is a programming error and surfaces as a panic carrying
// a *HookError. Configuration and CLI failures are returned as *HookError
// values so the command line can print them with Format.
//
// # Error Codes
//
// Each error has a code (e.g. "E001") that maps to a short message, a
// longer explanation and a documentation URL:
//
//	err := errors.New("E001").
//	    WithDetail("UseAsync called from an event handler").
//	    WithSuggestion("Call hooks unconditionally at the top of the render function")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Hook called outside a component render
//	//
//	//   UseAsync called from an event handler
//	//
//	//   Hint: Call hooks unconditionally at the top of the render function
//	//
//	//   Learn more: https://vango.dev/docs/uihooks/errors/E001
package errors
