package cli

import "strings"

func isStatementID(s string) bool {
	s = strings.TrimSpace(s)
	// Permissive on purpose; ids are generated but users paste variants.
	return strings.HasPrefix(s, "stm-") && len(s) > len("stm-")
}

// RewriteDirectLookupArgs makes `stmtforge <statement-id>` behave like
// `stmtforge statements show <statement-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Users often pass persistent flags first (e.g.
// `stmtforge --dir ... stm-xxx`), so the first positional token is located
// rather than assuming argv[1].
func RewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isStatementID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "statements", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isStatementID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "statements", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}
