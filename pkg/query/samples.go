package query

// SamplePatterns is a mix of pattern shapes that exercises every planner path:
// plain literals, single-character placeholders, length-only patterns,
// prefix/suffix/contains runs, multiple runs, character sets and optionals.
var SamplePatterns = []string{
	"love",
	"the",
	"considerate",
	"qq",

	"te?t",
	"f?r",
	"?o",
	"g?",
	"?et",
	"te?",
	"c?n?i?e?a?e",
	"c?????????e",

	"??",
	"????????",
	"????*",
	"*",
	"[a][b]*[c]",

	"te?t*",
	"cons*ate",
	"*ably",
	"*ell*",
	"qq*",
	"*qq",
	"*qq*",

	"a*b*c",
	"*a*b*c",
	"a*b*c*",
	"*a*b*c*",

	"initiali[zs]e",
	"[bjp]et",
	"colo[u]r",
	"[a][b][c]",

	"f{orm}",
	"{abc}",
	"{abcdef}",
}
