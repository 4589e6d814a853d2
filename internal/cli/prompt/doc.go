// Package prompt provides interactive CLI prompts: yes/no confirmation and
// backup selection.
//
// Selection has two implementations of [Picker]. [FuzzyPicker] opens a
// full-screen fuzzy finder and is used when stdin is a terminal.
// [Selector] prints a numbered list and reads a line, which works over
// pipes and in tests. [NewPicker] chooses between them; [NewSession]
// also pairs the picker with a [Confirmer] on the same input.
package prompt
