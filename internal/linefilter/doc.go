// Package linefilter minifies Python source text one line at a time. Each
// line loses everything from its comment marker onward and its surrounding
// whitespace, and lines that end up empty are dropped.
//
// Two strategies are available. Naive cuts at the first '#' on the line, even
// when that '#' sits inside a string literal. Lexical tracks quotes, including
// triple-quoted strings that span lines and single-quoted strings continued
// with a trailing backslash, and only cuts at a '#' outside a literal.
//
// Input must be valid UTF-8. Invalid bytes are an error, not replaced.
package linefilter
