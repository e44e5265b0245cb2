// Package errors provides coded, actionable errors for the navrouter CLI
// and its configuration layer.
//
// Each error has a code that maps to a registered template:
//   - E1xx: configuration (bad file, invalid values)
//   - E2xx: routing (malformed URLs, bad patterns)
//   - E3xx: command line usage
//
// # Usage
//
//	err := errors.New("E102").
//	    WithDetail("bridge.addr is empty").
//	    WithSuggestion("Set bridge.addr in navrouter.yaml or NAVROUTER_BRIDGE_ADDR")
//
//	fmt.Fprint(os.Stderr, err.Format())
package errors
