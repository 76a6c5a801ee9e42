package component

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/micro/pkg/markup"
)

// DefaultRenderTarget is the id of the element components mount under
// unless told otherwise.
const DefaultRenderTarget = "app"

// MountPolicy decides what a mount does when its target element is missing.
type MountPolicy int

const (
	// MountIgnore makes the mount a no-op.
	MountIgnore MountPolicy = iota
	// MountError makes the mount fail with an error.
	MountError
)

// String returns the policy name.
func (p MountPolicy) String() string {
	switch p {
	case MountIgnore:
		return "ignore"
	case MountError:
		return "error"
	default:
		return fmt.Sprintf("MountPolicy(%d)", int(p))
	}
}

// ParseMountPolicy parses "ignore" or "error"; the empty string is ignore.
func ParseMountPolicy(s string) (MountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return MountIgnore, nil
	case "error":
		return MountError, nil
	default:
		return MountIgnore, fmt.Errorf("component: unknown mount policy %q", s)
	}
}

type options struct {
	target    string
	policy    MountPolicy
	sanitizer markup.Sanitizer
	logger    *slog.Logger
}

// Option configures a Component.
type Option func(*options)

// WithRenderTarget sets the id of the element the component mounts under.
func WithRenderTarget(id string) Option {
	return func(o *options) {
		if id != "" {
			o.target = id
		}
	}
}

// WithMountPolicy sets the behavior for missing mount targets.
func WithMountPolicy(p MountPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithSanitizer filters every rendered template through s before it is
// assigned to the container.
func WithSanitizer(s markup.Sanitizer) Option {
	return func(o *options) {
		o.sanitizer = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
