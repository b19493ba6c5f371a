package optimization

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// Fingerprint identifies a normalized request. Equal tier and targets under
// the same rules version always give the same fingerprint.
func Fingerprint(tier wrathglory.Tier, targets map[string]int) string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "rules=%s;tier=%d", wrathglory.RulesVersion, tier)
	for _, name := range names {
		fmt.Fprintf(&sb, ";%s=%d", name, targets[name])
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
