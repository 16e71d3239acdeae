// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jfrag implements an incremental parser for JSON delivered in
// arbitrary text fragments.
//
// The package is intended for consumers of token-by-token model output
// streams, where the arguments of a tool call arrive as JSON split at
// unpredictable boundaries: mid-token, mid-string, or even partway through
// an escape sequence. The parser scans each fragment exactly once as it
// arrives, so the total cost of parsing a value is linear in its length no
// matter how finely the input is fragmented.
//
// # Parsing
//
// Construct a Parser with New, giving the name of the tool or stream the
// input belongs to, and feed it fragments with AddFragment. Each call
// returns the structural updates the fragment produced:
//
//	p := jfrag.New("search")
//	for frag := range frags {
//	   for _, u := range p.AddFragment(frag) {
//	      log.Printf("%v at %s: %s", u.Kind, u.Path, u.Text)
//	   }
//	}
//
// At any point between calls, CurrentJSON returns the input received so
// far, byte for byte, and IsComplete reports whether the root value has
// closed. A bare number at top level has no closing delimiter; call Close
// at the end of the stream to finalize it.
//
// # Updates
//
// Updates carry a Kind describing the milestone, the logical path of the
// affected value, the span of input text involved, and any associated text:
//
//	JSON syntax    | Kinds                    | Text
//	-------------- | ------------------------ | -------------------------
//	object         | BeginObject, EndObject   | --
//	array          | BeginArray, EndArray     | --
//	member key     | MemberKey                | key with quotes
//	string         | BeginString, StringPart, | unescaped content per
//	               | String                   | fragment; source text
//	number         | Number                   | number text, verbatim
//	true, false    | Bool                     | "true" or "false"
//	null           | Null                     | "null"
//	root complete  | Complete                 | all accumulated input
//
// String values are reported progressively: the content contributed by each
// fragment arrives as one StringPart, and the final String update carries
// the complete source text of the value with quotes and escapes intact.
// Member keys are never reported in parts, even when a key spans fragments;
// a single MemberKey update is delivered once the key's colon is seen.
//
// # Paths
//
// Every update is tagged with the logical path of the value it concerns,
// rooted at the literal "root": object members append ".key" and array
// elements append a 0-based "[index]", as in root.scores[1][0]. The upath
// subpackage parses this notation and matches paths against patterns with
// wildcards.
//
// The parser is not a validator. It assumes well-formed input, as produced
// by a conforming model provider, and degrades to a best-effort update
// sequence on malformed input rather than reporting errors.
package jfrag
