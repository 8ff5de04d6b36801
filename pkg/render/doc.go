/*
Package render turns a domain.Page into markup.

A Format supplies three component sets: the intrinsic Fallback (one element
per node kind), the Theme passed as the root component map, and a Registry of
named components and transforms that content files may reference in their
overrides.

Compile prepares a page once; the resulting Document can then be rendered any
number of times. Each node keeps a memo of its effective component map, so a
re-render with unchanged inputs resolves nothing again.
*/
package render
