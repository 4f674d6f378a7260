/*
xsdmodel declares Go types for classes derived from XML Schema, and
converts the custom scalar values used by those types.

Usage:

	xsdmodel resolve [-o file] [-pkg name] [-r rule] [--element name=type] [--overrides file] file ...
	xsdmodel codec [--type datetime|minute-datetime|duration] [--mode document|native] value ...

The resolve command reads YAML class descriptors, such as

	targetNamespace: urn:iec62325.351:tc57wg16:451-6:balancingdocument:4:1
	classes:
	  - name: Balancing_MarketDocument
	    attrs:
	      - tag: Element
	        name: createdDateTime
	        types: ["{http://www.w3.org/2001/XMLSchema}dateTime"]

and lists, for each class in dependency order, its Go identifier, the
types it embeds, one Go field declaration per field, and the imports
those declarations need. With the --json flag, the same information
is written as JSON.

The -r flag can be used to specify a series of replacement rules. A
replacement rule is a string of the form

	regex -> replacement

All identifiers are passed through the defined substitution rules.
The --element flag substitutes a Go type for every element with the
given name, and the --overrides flag loads element, tag and declared
type overrides from a YAML file.

The codec command validates each value with the codec of the given
type and prints its serialized form, one value per line. Errors
include the expected format and an example value.
*/
package main
