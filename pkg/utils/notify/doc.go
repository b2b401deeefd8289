// Package notify writes symbol-prefixed, colored status lines for CLI users.
//
// Errors (✗), warnings (⚠), progress (►), changes (✔) and unchanged results
// (ℹ) each get their own style. Colors are disabled automatically when the
// output is not a terminal.
package notify
