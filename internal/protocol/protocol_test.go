package protocol

import (
	"errors"
	"testing"
)

func TestHelloRoundTrip(t *testing.T) {
	buf := EncodeHello(Hello{Magic: Magic, Random: 0x17})
	got, err := DecodeHello(buf)
	if err != nil {
		t.Fatalf("decode hello: %v", err)
	}
	if got.Magic != Magic || got.Random != 0x17 {
		t.Fatalf("unexpected hello: %+v", got)
	}
}

func TestDecodeHelloBadMagic(t *testing.T) {
	buf := EncodeHello(Hello{Magic: 0xFF, Random: 0x17})
	if _, err := DecodeHello(buf); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestSetModeRoundTrip(t *testing.T) {
	for _, mode := range []DataMode{ModeNovelty, ModeNoveltyBeats} {
		buf, err := EncodeSetMode(SetMode{Mode: mode})
		if err != nil {
			t.Fatalf("encode set_mode %v: %v", mode, err)
		}
		got, err := DecodeSetMode(buf)
		if err != nil {
			t.Fatalf("decode set_mode %v: %v", mode, err)
		}
		if got.Mode != mode {
			t.Fatalf("mode mismatch: got %v want %v", got.Mode, mode)
		}
	}
}

func TestDecodeSetModeInvalidMode(t *testing.T) {
	buf := []byte{byte(TagSetMode), 9}
	if _, err := DecodeSetMode(buf); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestDataRoundTripBothModes(t *testing.T) {
	cases := []struct {
		name string
		mode DataMode
		data Data
	}{
		{"novelty", ModeNovelty, Data{Value: 0.8, Peak: 1.0}},
		{"novelty_beats", ModeNoveltyBeats, Data{Value: 0.8, Peak: 1.0, Beat: true}},
		{"novelty_beats_no_beat", ModeNoveltyBeats, Data{Value: 0.25, Peak: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := EncodeData(tc.mode, tc.data)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeData(tc.mode, buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.data {
				t.Fatalf("round-trip mismatch: got %+v want %+v", got, tc.data)
			}
		})
	}
}

func TestDecodeDataRejectsOtherFamilyShape(t *testing.T) {
	beats, err := EncodeData(ModeNoveltyBeats, Data{Value: 0.5, Peak: 1.0, Beat: true})
	if err != nil {
		t.Fatalf("encode beats: %v", err)
	}
	if _, err := DecodeData(ModeNovelty, beats); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}

	novelty, err := EncodeData(ModeNovelty, Data{Value: 0.5, Peak: 1.0})
	if err != nil {
		t.Fatalf("encode novelty: %v", err)
	}
	if _, err := DecodeData(ModeNoveltyBeats, novelty); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodeDataInvalidBeatByte(t *testing.T) {
	buf, err := EncodeData(ModeNoveltyBeats, Data{Value: 0.5, Peak: 1.0})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf[17] = 7
	if _, err := DecodeData(ModeNoveltyBeats, buf); !errors.Is(err, ErrInvalidBool) {
		t.Fatalf("expected ErrInvalidBool, got %v", err)
	}
}

func TestGoodbyeRoundTrip(t *testing.T) {
	buf := EncodeGoodbye(Goodbye{Magic: Magic, Force: true})
	got, err := DecodeGoodbye(buf)
	if err != nil {
		t.Fatalf("decode goodbye: %v", err)
	}
	if got.Magic != Magic || !got.Force {
		t.Fatalf("unexpected goodbye: %+v", got)
	}
}

func TestDecodeGoodbyeBadMagic(t *testing.T) {
	buf := EncodeGoodbye(Goodbye{Magic: 0x13, Force: false})
	if _, err := DecodeGoodbye(buf); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestAckRoundTrip(t *testing.T) {
	for _, status := range []AckStatus{AckOk, AckQuit, AckAbort} {
		buf, err := EncodeAck(Ack{Status: status})
		if err != nil {
			t.Fatalf("encode ack %v: %v", status, err)
		}
		got, err := DecodeAck(buf)
		if err != nil {
			t.Fatalf("decode ack %v: %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("status mismatch: got %v want %v", got.Status, status)
		}
	}
}

func TestDecodeAckInvalidStatus(t *testing.T) {
	buf := []byte{byte(TagAck), 99}
	if _, err := DecodeAck(buf); !errors.Is(err, ErrInvalidAckStatus) {
		t.Fatalf("expected ErrInvalidAckStatus, got %v", err)
	}
}

func TestPeekTag(t *testing.T) {
	tag, err := PeekTag(EncodeGoodbye(Goodbye{Magic: Magic}))
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if tag != TagGoodbye {
		t.Fatalf("unexpected tag: %v", tag)
	}

	if _, err := PeekTag(nil); !errors.Is(err, ErrShortPacket) {
		t.Fatalf("expected ErrShortPacket, got %v", err)
	}
	if _, err := PeekTag([]byte{0xEE}); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	buf := EncodeHello(Hello{Magic: Magic, Random: 1})
	if _, err := DecodeHello(buf[:2]); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodeTagMismatch(t *testing.T) {
	buf := EncodeHello(Hello{Magic: Magic, Random: 1})
	if _, err := DecodeSetMode(buf); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("expected ErrTagMismatch, got %v", err)
	}
}

func TestAllPacketsWithinDatagramBound(t *testing.T) {
	beats, _ := EncodeData(ModeNoveltyBeats, Data{Value: 1, Peak: 1, Beat: true})
	novelty, _ := EncodeData(ModeNovelty, Data{Value: 1, Peak: 1})
	mode, _ := EncodeSetMode(SetMode{Mode: ModeNovelty})
	ack, _ := EncodeAck(Ack{Status: AckOk})
	packets := [][]byte{
		EncodeHello(Hello{Magic: Magic, Random: 255}),
		mode, novelty, beats,
		EncodeGoodbye(Goodbye{Magic: Magic, Force: true}),
		ack,
	}
	for i, p := range packets {
		if len(p) > MaxDatagramSize {
			t.Fatalf("packet %d exceeds datagram bound: %d bytes", i, len(p))
		}
	}
}
