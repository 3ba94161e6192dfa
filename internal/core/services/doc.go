// Package services implements the driving port interfaces.
// Services contain the meal resolution pipeline and orchestrate calls to
// driven ports (food store, oracle, prompts, catalog).
//
// Services depend only on domain, ports and the logger. Adapters are injected.
package services
