package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/types"
)

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// stepError re-wraps err so its message names the repository, ref and
// failing step while keeping the original code. The cause carries the
// detail.
func stepError(err error, request types.InstallRequest, step string) error {
	code := errbuilder.CodeOf(err)
	if types.KindOf(err) == types.KindInternal {
		code = errbuilder.CodeInternal
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("install %s@%s failed at %s", request.URL, request.Ref(), step)).
		WithCause(err)
}
