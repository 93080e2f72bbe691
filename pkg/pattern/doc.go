/*
Package pattern locates fixed code fragments in plain text.

	     template                       buffer
	+----------------+          +-------------------+
	| for l in xs {  |  ----->  | ...               |
	|   out.push(l)  |  FindAll |     for l in xs { |
	| }              |          |  out.push(l) }    |
	+----------------+          +-------------------+

🎯 Purpose:
- Find a multi-line fragment without parsing the language it is written in
- Tolerate indentation, line breaks and spacing drift
- Keep every keyword, identifier and punctuation mark literal

🤝 Matchers:
- Whitespace: literal tokens joined by flexible whitespace wildcards
- Regexp: a raw RE2 expression
- Literal: exact bytes

All matchers report leftmost-first, non-overlapping spans. A grammar-aware
matcher can be added behind the same Matcher interface.

🔍 Example:

	m, err := pattern.Compile(pattern.KindWhitespace, `
		for l in listings {
			out.push(l);
		}`)
	if err != nil {
		return err
	}
	spans := m.FindAll(content)
*/
package pattern
