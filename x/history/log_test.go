package history

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogRoundTrip(t *testing.T) {
	signer := vaulttest.NewAddress()
	recipient := vaulttest.NewAddress()

	cases := map[string]struct {
		Log      func(Log, vault.KVStore) (uint64, error)
		WantKind EventKind
		Want     Payload
	}{
		"proposal": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogProposal(db, 4, recipient, 100)
			},
			WantKind: KindProposal,
			Want:     &Proposal{TxID: 4, Recipient: recipient, Amount: 100},
		},
		"execution": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogExecution(db, 4)
			},
			WantKind: KindExecution,
			Want:     &Execution{TxID: 4},
		},
		"signature": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogSignature(db, 4, signer)
			},
			WantKind: KindSignature,
			Want:     &Signature{TxID: 4, Signer: signer},
		},
		"key addition": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogKeyAddition(db, signer)
			},
			WantKind: KindKeyAddition,
			Want:     &KeyAddition{Signer: signer},
		},
		"key removal": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogKeyRemoval(db, signer)
			},
			WantKind: KindKeyRemoval,
			Want:     &KeyRemoval{Signer: signer},
		},
		"threshold change": {
			Log: func(l Log, db vault.KVStore) (uint64, error) {
				return l.LogRequiredSignaturesChange(db, 3)
			},
			WantKind: KindThresholdChange,
			Want:     &ThresholdChange{NewRequired: 3},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLog()

			id, err := tc.Log(l, db)
			assert.Nil(t, err)
			assert.Equal(t, uint64(0), id)

			e, err := l.GetEvent(db, id)
			assert.Nil(t, err)
			assert.Equal(t, id, e.ID)
			assert.Equal(t, tc.WantKind, e.Kind())
			assert.Equal(t, tc.Want, e.Payload)
		})
	}
}

func TestLogInvalidPayload(t *testing.T) {
	cases := map[string]struct {
		Payload Payload
		WantErr *errors.Error
	}{
		"nil payload": {
			Payload: nil,
			WantErr: errors.ErrEmpty,
		},
		"nil variant": {
			Payload: (*Execution)(nil),
			WantErr: errors.ErrState,
		},
		"proposal without recipient": {
			Payload: &Proposal{TxID: 1, Amount: 2},
			WantErr: errors.ErrInput,
		},
		"signature with malformed signer": {
			Payload: &Signature{TxID: 1, Signer: []byte("short")},
			WantErr: errors.ErrInput,
		},
		"key addition without signer": {
			Payload: &KeyAddition{},
			WantErr: errors.ErrInput,
		},
		"key removal without signer": {
			Payload: &KeyRemoval{},
			WantErr: errors.ErrInput,
		},
		"zero threshold": {
			Payload: &ThresholdChange{},
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLog()

			_, err := l.Append(db, tc.Payload)
			assert.IsErr(t, tc.WantErr, err)

			next, err := l.NextEventID(db)
			assert.Nil(t, err)
			assert.Equal(t, uint64(0), next)

			// The failed append must not leave a gap.
			id, err := l.LogExecution(db, 1)
			assert.Nil(t, err)
			assert.Equal(t, uint64(0), id)
		})
	}
}

func TestGetEventNotFound(t *testing.T) {
	db := store.MemStore()
	l := NewLog()

	_, err := l.GetEvent(db, 99)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = l.GetEvent(db, 0)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = l.LogExecution(db, 1)
	assert.Nil(t, err)
	_, err = l.GetEvent(db, 0)
	assert.Nil(t, err)
	_, err = l.GetEvent(db, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestEventIDs(t *testing.T) {
	Convey("Given an empty log", t, func() {
		db := store.MemStore()
		l := NewLog()
		signer := vaulttest.NewAddress()

		Convey("event ids start at zero and grow by one", func() {
			for want := uint64(0); want < 300; want++ {
				var (
					id  uint64
					err error
				)
				switch want % 3 {
				case 0:
					id, err = l.LogSignature(db, want, signer)
				case 1:
					id, err = l.LogKeyAddition(db, signer)
				default:
					id, err = l.LogRequiredSignaturesChange(db, 1)
				}
				So(err, ShouldBeNil)
				So(id, ShouldEqual, want)
			}

			next, err := l.NextEventID(db)
			So(err, ShouldBeNil)
			So(next, ShouldEqual, uint64(300))

			Convey("and events are listed in log order", func() {
				events, err := l.Events(db, 0, 0)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 300)
				for i, e := range events {
					So(e.ID, ShouldEqual, uint64(i))
				}

				page, err := l.Events(db, 255, 3)
				So(err, ShouldBeNil)
				So(len(page), ShouldEqual, 3)
				So(page[0].ID, ShouldEqual, uint64(255))
				So(page[2].ID, ShouldEqual, uint64(257))

				tail, err := l.Events(db, 298, 10)
				So(err, ShouldBeNil)
				So(len(tail), ShouldEqual, 2)

				none, err := l.Events(db, 300, 10)
				So(err, ShouldBeNil)
				So(len(none), ShouldEqual, 0)
			})
		})
	})
}

func TestTxEvents(t *testing.T) {
	db := store.MemStore()
	l := NewLog()
	alice := vaulttest.NewAddress()
	bobby := vaulttest.NewAddress()

	mustLog := func(id uint64, err error) uint64 {
		t.Helper()
		assert.Nil(t, err)
		return id
	}

	p1 := mustLog(l.LogProposal(db, 1, bobby, 10))
	mustLog(l.LogKeyAddition(db, bobby))
	p256 := mustLog(l.LogProposal(db, 256, alice, 20))
	s1 := mustLog(l.LogSignature(db, 1, alice))
	s256 := mustLog(l.LogSignature(db, 256, bobby))
	x1 := mustLog(l.LogExecution(db, 1))

	ids := func(events []*Event) []uint64 {
		out := make([]uint64, 0, len(events))
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}

	events, err := l.TxEvents(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{p1, s1, x1}, ids(events))

	events, err = l.TxEvents(db, 256)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{p256, s256}, ids(events))

	events, err = l.TxEvents(db, 7)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(events))
}

func TestLogIsAtomicWithCache(t *testing.T) {
	db := store.MemStore()
	l := NewLog()

	cache := db.CacheWrap()
	_, err := l.LogProposal(cache, 1, vaulttest.NewAddress(), 5)
	assert.Nil(t, err)
	cache.Discard()

	next, err := l.NextEventID(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), next)
	events, err := l.TxEvents(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(events))
}
