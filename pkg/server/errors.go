package server

import (
	"errors"

	microerrors "github.com/vango-dev/micro/internal/errors"
	"github.com/vango-dev/micro/pkg/reactive"
)

// ErrProtocol is matched by errors for malformed client frames.
var ErrProtocol = errors.New("server: invalid client message")

func protocolError(format string, args ...any) error {
	return microerrors.New("M009").WithDetailf(format, args...).Wrap(ErrProtocol)
}

// errorCode returns the code of a coded error, or "" for other errors.
func errorCode(err error) string {
	var coded *microerrors.Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// frameCode picks the code reported in an error frame.
func frameCode(err error) string {
	if code := errorCode(err); code != "" {
		return code
	}
	if errors.Is(err, reactive.ErrUpdateCycle) {
		return "M005"
	}
	return ""
}
