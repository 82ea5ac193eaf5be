// Package link implements the M-Bus link layer (EN 13757-2): frame
// delimiters, length echoes, checksums, and the control byte that tags a
// frame as primary- or secondary-station traffic. The frame markers
// (0x68/0x10/0x16) are bit-for-bit identical to the FT1.2 link layer IEC
// 60870-5-1 family frames use; the control-byte bit layout below adapts
// that same frame-format convention to M-Bus's own function-code set.
package link

import "github.com/meterkit/go-mbus/mbuserr"

// Control byte bit layout: {reserved(1), PRM(1), FCB/ACD(1), FCV/DFC(1),
// function(4)}, MSB first.
const (
	bitReservedDir = 1 << 7
	bitPRM         = 1 << 6
	bitFCBACD      = 1 << 5
	bitFCVDFC      = 1 << 4
	maskFunction   = 0x0F
)

// PrimaryFunction enumerates the function codes valid when PRM=1 (a
// primary/master station addressing a secondary/slave station).
type PrimaryFunction byte

const (
	ResetRemoteLink             PrimaryFunction = 0
	ResetUserProcess            PrimaryFunction = 1
	BalanceTestLink             PrimaryFunction = 2
	UserDataWithConfirmed       PrimaryFunction = 3
	UserDataWithUnconfirmed     PrimaryFunction = 4
	UnbalanceRequestBitResponse PrimaryFunction = 8
	RequestLinkStatus           PrimaryFunction = 9
	UnbalanceLevel1UserData     PrimaryFunction = 10
)

func (f PrimaryFunction) String() string {
	switch f {
	case ResetRemoteLink:
		return "reset remote link"
	case ResetUserProcess:
		return "reset user process"
	case BalanceTestLink:
		return "balance test link"
	case UserDataWithConfirmed:
		return "send user data (confirmed)"
	case UserDataWithUnconfirmed:
		return "send user data (unconfirmed)"
	case UnbalanceRequestBitResponse:
		return "request with access demand response"
	case RequestLinkStatus:
		return "request link status"
	case UnbalanceLevel1UserData:
		return "request user data class 1"
	default:
		return "reserved"
	}
}

// SecondaryFunction enumerates the function codes valid when PRM=0 (a
// secondary/slave station replying to a primary station).
type SecondaryFunction byte

const (
	Confirmed                 SecondaryFunction = 0
	NotConfirmed              SecondaryFunction = 1
	UnbalanceResponse         SecondaryFunction = 8
	UnbalanceNegativeResponse SecondaryFunction = 9
	LinkStatus                SecondaryFunction = 11
	LinkServiceNotWorking     SecondaryFunction = 14
	LinkServiceNotCompleted   SecondaryFunction = 15
)

func (f SecondaryFunction) String() string {
	switch f {
	case Confirmed:
		return "confirmed"
	case NotConfirmed:
		return "not confirmed"
	case UnbalanceResponse:
		return "unbalance response"
	case UnbalanceNegativeResponse:
		return "unbalance negative response"
	case LinkStatus:
		return "link status"
	case LinkServiceNotWorking:
		return "link service not working"
	case LinkServiceNotCompleted:
		return "link service not completed"
	default:
		return "reserved"
	}
}

// DFCState is the data-flow-control bit a secondary station sets to tell
// the primary whether it may keep sending.
type DFCState bool

const (
	Continue DFCState = false
	Pause    DFCState = true
)

// Control is the decoded form of the link-layer control byte. Exactly one
// of Primary or Secondary is populated, selected by the PRM bit.
type Control struct {
	Raw       byte
	IsPrimary bool

	// Populated when IsPrimary is true.
	FCB      bool
	Function PrimaryFunction

	// Populated when IsPrimary is false.
	ACD       bool
	DFC       DFCState
	SFunction SecondaryFunction
}

// ParseControl decodes the control byte's {reserved, PRM, FCB/ACD,
// FCV/DFC, function(4)} bit layout. The top (reserved) bit must be zero;
// a set bit fails with context "control byte" wrapping "reserved".
func ParseControl(b byte) (Control, error) {
	if b&bitReservedDir != 0 {
		return Control{}, mbuserr.New(mbuserr.Structural, "reserved").WithContext("control byte")
	}

	c := Control{Raw: b}
	c.IsPrimary = b&bitPRM != 0
	fn := b & maskFunction

	if c.IsPrimary {
		c.FCB = b&bitFCBACD != 0
		c.Function = PrimaryFunction(fn)
		if c.Function.String() == "reserved" {
			return Control{}, mbuserr.New(mbuserr.Structural, "reserved").WithContext("control byte")
		}
		return c, nil
	}

	c.ACD = b&bitFCBACD != 0
	if b&bitFCVDFC != 0 {
		c.DFC = Pause
	} else {
		c.DFC = Continue
	}
	c.SFunction = SecondaryFunction(fn)
	if c.SFunction.String() == "reserved" {
		return Control{}, mbuserr.New(mbuserr.Structural, "reserved").WithContext("control byte")
	}
	return c, nil
}

// Value re-encodes Control back to its wire byte, the same paired
// ParseXxx/Value idiom used for the bitfield types elsewhere in this
// decoder.
func (c Control) Value() byte {
	b := c.Raw & bitReservedDir
	if c.IsPrimary {
		b |= bitPRM
		if c.FCB {
			b |= bitFCBACD
		}
		b |= byte(c.Function) & maskFunction
		return b
	}
	if c.ACD {
		b |= bitFCBACD
	}
	if c.DFC == Pause {
		b |= bitFCVDFC
	}
	b |= byte(c.SFunction) & maskFunction
	return b
}
