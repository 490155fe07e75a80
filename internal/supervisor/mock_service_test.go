// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService counts starts and fails the first failFirst runs.
type mockService struct {
	name       string
	failFirst  int32
	startCount atomic.Int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) Serve(ctx context.Context) error {
	if n := m.startCount.Add(1); n <= m.failFirst {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}

func (m *mockService) starts() int {
	return int(m.startCount.Load())
}
