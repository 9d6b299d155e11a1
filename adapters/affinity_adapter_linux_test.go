//go:build linux

package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-bcast/adapters"
)

func TestAffinityAdapter_PinUnpin(t *testing.T) {
	errs := make(chan error, 1)
	go func() {
		a := adapters.NewAffinityAdapter()
		if err := a.Pin(-1); err != nil {
			errs <- err
			return
		}
		if cpu, _ := a.Get(); cpu < 0 || !a.Descriptor().Pinned {
			errs <- errNotPinned
			return
		}
		if err := a.Unpin(); err != nil {
			errs <- err
			return
		}
		if cpu, _ := a.Get(); cpu != -1 {
			errs <- errNotPinned
			return
		}
		errs <- nil
	}()
	require.NoError(t, <-errs)
}

type pinError string

func (e pinError) Error() string { return string(e) }

const errNotPinned = pinError("affinity adapter state mismatch")
