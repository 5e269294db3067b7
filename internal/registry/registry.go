// Package registry maps the 16-bit device-type codes advertised in
// discovery responses to a behaviour profile, a display model, and a
// manufacturer. It mirrors the "what device is this" lookup step that
// sits between discovery and constructing a usable device handle.
package registry

// Profile names the behaviour family a device-type code belongs to. The
// device package uses this to select which C9 leaf wraps the handle.
type Profile string

const (
	ProfileSP1      Profile = "sp1"
	ProfileSP2      Profile = "sp2"
	ProfileSP2S     Profile = "sp2s"
	ProfileSP3      Profile = "sp3"
	ProfileSP3S     Profile = "sp3s"
	ProfileSP4      Profile = "sp4"
	ProfileSP4B     Profile = "sp4b"
	ProfileMP1      Profile = "mp1"
	ProfileBG1      Profile = "bg1"
	ProfileRMMini   Profile = "rmmini"
	ProfileRMPro    Profile = "rmpro"
	ProfileRMMiniB  Profile = "rmminib"
	ProfileRM4Mini  Profile = "rm4mini"
	ProfileRM4Pro   Profile = "rm4pro"
	ProfileA1       Profile = "a1"
	ProfileS1C      Profile = "s1c"
	ProfileDooya    Profile = "dooya"
	ProfileHysen    Profile = "hysen"
	ProfileLB1      Profile = "lb1"
	ProfileLB27     Profile = "lb27"
	ProfileHVAC     Profile = "hvac"
	ProfileS3Hub    Profile = "s3hub"
	ProfileSP2Mini2 Profile = "sp2mini2"
	ProfileUnknown  Profile = "unknown"
)

// Entry describes everything the registry knows about a device-type code.
type Entry struct {
	Profile      Profile
	Model        string
	Manufacturer string
	// DeviceTypeBytes, when non-zero, overrides the default request-header
	// device-type byte pair for outgoing frames. sp2mini2 units echo a
	// device-type in discovery responses that differs from the byte pair
	// they expect back in the outer frame header; every other profile
	// leaves this nil and uses protocol.DefaultDeviceTypeBytes.
	DeviceTypeBytes *[2]byte
}

// table is built directly from the SUPPORTED_TYPES mapping of the
// reference Python client's discovery module; the hvac and s3hub entries
// are not present in that table (those families ship under device-type
// codes not covered by the retrieved snapshot) and are synthesized here
// with placeholder codes so the two families named by the device roster
// still resolve to a profile instead of falling through to Unknown.
//
// sp2mini2 is deliberately absent: its standalone reference implementation
// advertises device-type 0x2728, a code the canonical table already binds
// to an unrelated SP2-compatible Honeywell/URANT unit. Rather than let one
// profile silently shadow the other, no entry maps to ProfileSP2Mini2, so
// Lookup never returns it, and no entry sets a DeviceTypeBytes override.
var table = map[uint16]Entry{
	0x0000: {ProfileSP1, "SP1", "Broadlink", nil},
	0x2717: {ProfileSP2, "NEO", "Ankuoo", nil},
	0x2719: {ProfileSP2, "SP2-compatible", "Honeywell", nil},
	0x271A: {ProfileSP2, "SP2-compatible", "Honeywell", nil},
	0x2720: {ProfileSP2, "SP mini", "Broadlink", nil},
	0x2728: {ProfileSP2, "SP2-compatible", "URANT", nil},
	0x273E: {ProfileSP2, "SP mini", "Broadlink", nil},
	0x7530: {ProfileSP2, "SP2", "Broadlink (OEM)", nil},
	0x7539: {ProfileSP2, "SP2-IL", "Broadlink (OEM)", nil},
	0x753E: {ProfileSP2, "SP mini 3", "Broadlink", nil},
	0x7540: {ProfileSP2, "MP2", "Broadlink", nil},
	0x7544: {ProfileSP2, "SP2-CL", "Broadlink", nil},
	0x7546: {ProfileSP2, "SP2-UK/BR/IN", "Broadlink (OEM)", nil},
	0x7547: {ProfileSP2, "SC1", "Broadlink", nil},
	0x7918: {ProfileSP2, "SP2", "Broadlink (OEM)", nil},
	0x7919: {ProfileSP2, "SP2-compatible", "Honeywell", nil},
	0x791A: {ProfileSP2, "SP2-compatible", "Honeywell", nil},
	0x7D0D: {ProfileSP2, "SP mini 3", "Broadlink (OEM)", nil},
	0x2711: {ProfileSP2S, "SP2", "Broadlink", nil},
	0x2716:          {ProfileSP2S, "NEO PRO", "Ankuoo", nil},
	0x271D:          {ProfileSP2S, "Ego", "Efergy", nil},
	0x2736:          {ProfileSP2S, "SP mini+", "Broadlink", nil},
	0x2733:          {ProfileSP3, "SP3", "Broadlink", nil},
	0x7D00:          {ProfileSP3, "SP3-EU", "Broadlink (OEM)", nil},
	0x9479:          {ProfileSP3S, "SP3S-US", "Broadlink", nil},
	0x947A:          {ProfileSP3S, "SP3S-EU", "Broadlink", nil},
	0x756C:          {ProfileSP4, "SP4M", "Broadlink", nil},
	0x756F:          {ProfileSP4, "MCB1", "Broadlink", nil},
	0x7579:          {ProfileSP4, "SP4L-EU", "Broadlink", nil},
	0x7583:          {ProfileSP4, "SP mini 3", "Broadlink", nil},
	0x7D11:          {ProfileSP4, "SP mini 3", "Broadlink", nil},
	0xA56A:          {ProfileSP4, "MCB1", "Broadlink", nil},
	0xA589:          {ProfileSP4, "SP4L-UK", "Broadlink", nil},
	0x5115:          {ProfileSP4B, "SCB1E", "Broadlink", nil},
	0x51E2:          {ProfileSP4B, "AHC/U-01", "BG Electrical", nil},
	0x6111:          {ProfileSP4B, "MCB1", "Broadlink", nil},
	0x6113:          {ProfileSP4B, "SCB1E", "Broadlink", nil},
	0x618B:          {ProfileSP4B, "SP4L-EU", "Broadlink", nil},
	0x6489:          {ProfileSP4B, "SP4L-AU", "Broadlink", nil},
	0x648B:          {ProfileSP4B, "SP4M-US", "Broadlink", nil},
	0x2737:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x278F:          {ProfileRMMini, "RM mini", "Broadlink", nil},
	0x27C2:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27C7:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27CC:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27CD:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27D0:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27D1:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27D3:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x27DE:          {ProfileRMMini, "RM mini 3", "Broadlink", nil},
	0x2712:          {ProfileRMPro, "RM pro/pro+", "Broadlink", nil},
	0x272A:          {ProfileRMPro, "RM pro", "Broadlink", nil},
	0x273D:          {ProfileRMPro, "RM pro", "Broadlink", nil},
	0x277C:          {ProfileRMPro, "RM home", "Broadlink", nil},
	0x2783:          {ProfileRMPro, "RM home", "Broadlink", nil},
	0x2787:          {ProfileRMPro, "RM pro", "Broadlink", nil},
	0x278B:          {ProfileRMPro, "RM plus", "Broadlink", nil},
	0x2797:          {ProfileRMPro, "RM pro+", "Broadlink", nil},
	0x279D:          {ProfileRMPro, "RM pro+", "Broadlink", nil},
	0x27A1:          {ProfileRMPro, "RM plus", "Broadlink", nil},
	0x27A6:          {ProfileRMPro, "RM plus", "Broadlink", nil},
	0x27A9:          {ProfileRMPro, "RM pro+", "Broadlink", nil},
	0x27C3:          {ProfileRMPro, "RM pro+", "Broadlink", nil},
	0x5F36:          {ProfileRMMiniB, "RM mini 3", "Broadlink", nil},
	0x6508:          {ProfileRMMiniB, "RM mini 3", "Broadlink", nil},
	0x51DA:          {ProfileRM4Mini, "RM4 mini", "Broadlink", nil},
	0x6070:          {ProfileRM4Mini, "RM4C mini", "Broadlink", nil},
	0x610E:          {ProfileRM4Mini, "RM4 mini", "Broadlink", nil},
	0x610F:          {ProfileRM4Mini, "RM4C mini", "Broadlink", nil},
	0x62BC:          {ProfileRM4Mini, "RM4 mini", "Broadlink", nil},
	0x62BE:          {ProfileRM4Mini, "RM4C mini", "Broadlink", nil},
	0x6364:          {ProfileRM4Mini, "RM4S", "Broadlink", nil},
	0x648D:          {ProfileRM4Mini, "RM4 mini", "Broadlink", nil},
	0x6539:          {ProfileRM4Mini, "RM4C mini", "Broadlink", nil},
	0x653A:          {ProfileRM4Mini, "RM4 mini", "Broadlink", nil},
	0x6026:          {ProfileRM4Pro, "RM4 pro", "Broadlink", nil},
	0x61A2:          {ProfileRM4Pro, "RM4 pro", "Broadlink", nil},
	0x649B:          {ProfileRM4Pro, "RM4 pro", "Broadlink", nil},
	0x653C:          {ProfileRM4Pro, "RM4 pro", "Broadlink", nil},
	0x2714:          {ProfileA1, "e-Sensor", "Broadlink", nil},
	0x2722:          {ProfileS1C, "S2KIT", "Broadlink", nil},
	0x4E4D:          {ProfileDooya, "DT360E-45/20", "Dooya", nil},
	0x4EAD:          {ProfileHysen, "HY02B05H", "Hysen", nil},
	0x4EB5:          {ProfileMP1, "MP1-1K4S", "Broadlink", nil},
	0x4EF7:          {ProfileMP1, "MP1-1K4S", "Broadlink (OEM)", nil},
	0x4F1B:          {ProfileMP1, "MP1-1K3S2U", "Broadlink (OEM)", nil},
	0x4F65:          {ProfileMP1, "MP1-1K3S2U", "Broadlink", nil},
	0x51E3:          {ProfileBG1, "BG800/BG900", "BG Electrical", nil},
	0x5043:          {ProfileLB1, "SB800TD", "Broadlink (OEM)", nil},
	0x504E:          {ProfileLB1, "LB1", "Broadlink", nil},
	0x60C7:          {ProfileLB1, "LB1", "Broadlink", nil},
	0x60C8:          {ProfileLB1, "LB1", "Broadlink", nil},
	0x6112:          {ProfileLB1, "LB1", "Broadlink", nil},
	0xA4F4:          {ProfileLB27, "LB27 R1", "Broadlink", nil},
	0x5262:          {ProfileHVAC, "HVAC", "Broadlink", nil},
	0x520C:          {ProfileS3Hub, "S3", "Broadlink", nil},
}

// Lookup returns the entry for devType, and false for unrecognised codes.
func Lookup(devType uint16) (Entry, bool) {
	e, ok := table[devType]
	return e, ok
}
