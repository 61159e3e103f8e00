// Package forms implements the reusable form-field controls shared by
// every list screen and modal: masked text/number/money/phone/email
// inputs, single and range date fields, and catalog typeaheads with a
// single- and multi-select variant.
//
// Controls are bubbletea components composed as siblings by a parent
// form; they never call each other. Each one implements the Field
// value-exchange contract: the container pushes a value in, the control
// renders it, the user edits it, and the control reports committed
// values through registered notifiers. Input guarding and value
// formatting live in pure functions so they are testable without
// simulating key events.
package forms
