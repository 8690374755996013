// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless chat client runtime.
//
// It restores or establishes the login session, opens the realtime
// connection, follows the configured conversations and reports events to an
// [EventSink] until the process is stopped or the session ends.
package client
