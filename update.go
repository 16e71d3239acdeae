// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

// A Kind is the type of a structural update reported by a Parser.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid update
	BeginObject             // an object opened: "{"
	EndObject               // the most-recently-opened object closed: "}"
	BeginArray              // an array opened: "["
	EndArray                // the most-recently-opened array closed: "]"
	MemberKey               // an object member key, reported once its colon is seen
	BeginString             // a string value opened: '"'
	StringPart              // string value content contributed by a single fragment
	String                  // a string value closed
	Number                  // a complete number value
	Bool                    // a complete boolean value
	Null                    // a complete null value
	Complete                // the root value is fully parsed
)

var kindStr = [...]string{
	Invalid:     "invalid update",
	BeginObject: "BeginObject",
	EndObject:   "EndObject",
	BeginArray:  "BeginArray",
	EndArray:    "EndArray",
	MemberKey:   "MemberKey",
	BeginString: "BeginString",
	StringPart:  "StringPart",
	String:      "String",
	Number:      "Number",
	Bool:        "Bool",
	Null:        "Null",
	Complete:    "Complete",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Span describes a contiguous span of the accumulated input text.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// An Update describes a single structural milestone observed while parsing
// fragments of a JSON value.
//
// The Path locates the update within the value under construction. It is
// rooted at the literal "root"; object members append ".key" with the
// unescaped key text, and array elements append a 0-based "[index]". The
// path of a Begin or End update is the position the container itself
// occupies, and the path of a MemberKey update is that of the object the
// member belongs to.
//
// The meaning of Text depends on the Kind:
//
//	Kind        | Text
//	----------- | ----------------------------------------------------
//	MemberKey   | the key as it appeared in the input, with quotes
//	StringPart  | unescaped content contributed by one fragment
//	String      | the complete string as it appeared, with quotes
//	Number      | the number text, verbatim (e.g. "1.25e-4")
//	Bool        | "true" or "false"
//	Null        | "null"
//	Complete    | all accumulated input text
//	(others)    | ""
//
// The Span records the range of accumulated input text that produced the
// update. For a StringPart this covers the raw source bytes, including any
// escape sequences, that decoded to the reported content.
type Update struct {
	Kind Kind
	Path string
	Span Span
	Text string
}
