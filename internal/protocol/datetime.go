package protocol

import (
	"encoding/binary"
	"net"
	"time"
)

// PackDatetime writes the local time, timezone offset, and a partial
// two-digit year into the 12 bytes a discovery probe carries at 0x08-0x13:
// offset(i32) year(u16) minute hour year%100 weekday day month.
func PackDatetime(t time.Time, buf []byte) {
	_, offsetSeconds := t.Zone()
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(offsetSeconds/3600)))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(t.Year()))
	buf[6] = byte(t.Minute())
	buf[7] = byte(t.Hour())
	buf[8] = byte(t.Year() % 100)
	buf[9] = byte(isoWeekday(t))
	buf[10] = byte(t.Day())
	buf[11] = byte(t.Month())
}

// isoWeekday returns Monday=1 .. Sunday=7, matching Python's isoweekday().
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// PackAddress writes a local IPv4 address and port into the 6 bytes a
// discovery probe carries at 0x18-0x1D: ipv4(4) ‖ port_le16.
func PackAddress(ip net.IP, port int, buf []byte) {
	v4 := ip.To4()
	if v4 == nil {
		v4 = net.IPv4zero.To4()
	}
	copy(buf[0:4], v4)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(port))
}
