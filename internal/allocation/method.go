package allocation

import (
	"fmt"
	"strings"

	"ArticleAllocator/internal/domain"
)

// ParseMethod maps the caller-supplied method string to a typed method. An
// empty string selects the default; anything else unknown is rejected rather
// than silently defaulted.
func ParseMethod(value string) (domain.AllocationMethod, error) {
	switch method := domain.AllocationMethod(strings.TrimSpace(value)); method {
	case "":
		return domain.AllocateByPriority, nil
	case domain.AllocateByPriority, domain.AllocateByPages:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedMethod, value)
	}
}
