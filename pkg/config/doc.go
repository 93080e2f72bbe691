/*
Package config loads rule files for reshape.

	            +-------------+
	            |   Config    |
	            |   (Rules)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads a rule file and picks a parser by extension
- Validates rules and fills in defaults
- Compiles rules into text.ReplacementRule values

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Resolves a relative target against the config file's directory
4. Validates rule names, patterns kinds and globs

🔍 Example (YAML):

	target: backend/src/routes/listings.rs
	strict: true
	rules:
	  - name: host_listings
	    kind: whitespace
	    match: |
	      let mut out: Vec<ListingWithDetails> = ...
	    replace: |
	      let mut out: Vec<MarketplaceListing> = ...
	    files: "*.rs"
*/
package config
