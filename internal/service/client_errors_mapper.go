// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The adapter error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *adapter.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		switch {
		case strings.HasPrefix(httpErr.Body, app.MsgLoginFailedPrefix):
			return fmt.Errorf("%w: %w", ErrWrongPassword, err)
		case httpErr.Body == app.MsgInvalidRefreshToken, httpErr.Body == app.MsgRefreshUserDisabled:
			return fmt.Errorf("%w: %w", ErrRefreshTokenInvalid, err)
		}

	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return err
}
