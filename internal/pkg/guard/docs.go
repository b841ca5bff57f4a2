// Package guard provides ConstructorGuard, a small marker embedded into domain
// types so that values bypassing their constructors fail validation.
package guard
