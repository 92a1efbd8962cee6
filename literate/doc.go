/*
Package literate reads Literate Model notation, a plain text format for describing data models.

	# Org - the organization model
	## Staffing
	_ Employee - a person who works here
	__ [Core] - required
	- [name] - full name (required String value)
	SubtypeOf: Person

Lines starting with "#" open subjects, "_" classes, "__" attribute sections and "-" attributes.
Other "label: value" lines set class fields or become annotations of the innermost open component,
and prose is kept between "<<<" and ">>>" markers.

Parsing happens in two passes. Markup inserts the markers around prose so a line such as
"Note: the - sign" is never mistaken for structure, and the parser then builds the Model from the
marked lines. Markup is idempotent, so already marked text may be parsed as well.
*/
package literate
