// Package config loads navrouter configuration.
//
// Configuration is read from an optional navrouter.yaml file and then
// overridden by NAVROUTER_* environment variables. Nested keys use the
// section name as prefix:
//
//	origin: http://localhost
//	preserve_param_case: false
//	bridge:
//	  addr: ":8080"
//	  path: /ws
//	  allowed_origins: [http://localhost:3000]
//	  write_timeout: 5s
//	metrics:
//	  enabled: true
//	  namespace: navrouter
//	tracing:
//	  enabled: false
//	  tracer_name: navrouter
//	log:
//	  level: info
//
// NAVROUTER_BRIDGE_ADDR=:9090 overrides bridge.addr and
// NAVROUTER_PRESERVE_PARAM_CASE=true overrides preserve_param_case.
package config
