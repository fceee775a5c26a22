package plist

import (
	"time"

	"github.com/signadot/plist-format/go-plist/native"
)

// MacEpoch is the reference instant of stored dates, 2001-01-01T00:00:00Z.
var MacEpoch = time.Unix(native.MacEpochUnix, 0).UTC()

const macEpochOffset = native.MacEpochUnix * time.Second

// dateParts splits d, a duration since the Unix epoch, into seconds and
// microseconds since MacEpoch. Both parts truncate toward zero.
func dateParts(d time.Duration) (int64, int32) {
	off := d - macEpochOffset
	sec := int64(off / time.Second)
	usec := int32((off % time.Second) / time.Microsecond)
	return sec, usec
}

// NewDate returns a date node for d, the time elapsed since the Unix
// epoch. Precision below a microsecond is truncated.
func (h *Heap) NewDate(d time.Duration) *Node {
	sec, usec := dateParts(d)
	r, st := h.store.NewDate(sec, usec)
	return h.mustOwned(r, st, "new date")
}

// NewDateTime returns a date node for t at microsecond precision.
func (h *Heap) NewDateTime(t time.Time) *Node {
	us := t.UnixMicro() - native.MacEpochUnix*1e6
	r, st := h.store.NewDate(us/1e6, int32(us%1e6))
	return h.mustOwned(r, st, "new date")
}

// DateVal returns the date as the time elapsed since the Unix epoch.
func (n *Node) DateVal() (time.Duration, error) {
	if err := n.expect(DateKind); err != nil {
		return 0, err
	}
	sec, usec, st := n.heap.store.GetDate(n.ref)
	if err := statusErr("date value", st); err != nil {
		return 0, err
	}
	return time.Duration(sec)*time.Second + time.Duration(usec)*time.Microsecond + macEpochOffset, nil
}

// TimeVal returns the date as a UTC time.Time.
func (n *Node) TimeVal() (time.Time, error) {
	if err := n.expect(DateKind); err != nil {
		return time.Time{}, err
	}
	sec, usec, st := n.heap.store.GetDate(n.ref)
	if err := statusErr("date value", st); err != nil {
		return time.Time{}, err
	}
	return native.DateTime(sec, usec), nil
}

func (n *Node) SetDateVal(d time.Duration) error {
	if err := n.expect(DateKind); err != nil {
		return err
	}
	sec, usec := dateParts(d)
	return statusErr("set date value", n.heap.store.SetDate(n.ref, sec, usec))
}
