package domain

import "strings"

// domainByPrefix maps task-ID prefixes to report domains. Two prefix
// generations are in circulation in the benchmark corpus (short tags like
// HLT and longer ones like HEALTH); both resolve to the same domains.
var domainByPrefix = map[string]string{
	"FIN":    "Finance",
	"RET":    "Retail",
	"RETAIL": "Retail",
	"HLT":    "Healthcare",
	"HEALTH": "Healthcare",
	"TEC":    "Technology",
	"TECH":   "Technology",
	"MKT":    "Marketing",
	"LOG":    "Logistics",
	"HR":     "HR/Labor",
	"MFG":    "Manufacturing",
	"RE":     "Real Estate",
	"LEG":    "Legal",
	"LEGAL":  "Legal",
}

// TaskDomain resolves a task ID like "FIN-001" to its report domain by
// stripping the trailing numeric segment and looking up the prefix. Unmapped
// prefixes become their own singleton domain so unknown tasks still roll up.
func TaskDomain(taskID string) string {
	prefix := taskID
	if i := strings.LastIndex(taskID, "-"); i >= 0 {
		prefix = taskID[:i]
	}
	if d, ok := domainByPrefix[strings.ToUpper(prefix)]; ok {
		return d
	}
	return prefix
}
