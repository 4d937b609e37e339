// Package lang implements the tali scripting language: a small,
// dynamically typed language executed by a tree-walking interpreter.
//
// The pipeline has four stages, each in its own subpackage except the
// last:
//
//   - lexer: source text to tokens, with line and column tracking
//   - parser: tokens to a syntax tree by recursive descent
//   - ast: the passive tree node definitions
//   - this package: values, scopes, and the evaluator
//
// # Example
//
// Parse and run a program:
//
//	prog, err := lang.Parse(`
//		fn counter() {
//			let n = 0;
//			fn next() {
//				n = n + 1;
//				return n;
//			}
//			return next;
//		}
//		let tick = counter();
//		print tick(); // 1
//		print tick(); // 2
//	`)
//	if err != nil {
//		return err
//	}
//
//	in := lang.NewInterpreter()
//	if _, err := in.RunProgram(prog); err != nil {
//		return err
//	}
//
// # Semantics
//
// Values are numbers (float64), strings, booleans, nil, and
// functions. Arithmetic and ordering require numbers on both sides.
// Equality is defined within a kind only; values of different kinds
// never compare equal. Booleans are truth-valued directly, nil is
// falsy, and every other value is truthy.
//
// Scopes form a chain rooted at one global scope. Declarations bind
// in the current scope; assignment mutates the nearest existing
// binding and never creates one. Functions capture the environment of
// their declaration site, so closures share (not copy) outer
// variables.
//
// Non-local control (return, break, continue) is propagated as an
// explicit signal returned from statement execution, never by
// panicking through the host stack.
package lang
