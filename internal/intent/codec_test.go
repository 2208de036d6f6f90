package intent

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/feltview/internal/state"
)

func TestCodecsPreserveEnvelope(t *testing.T) {
	env := Envelope{
		ID:   "4f1c2a7e-0000-4000-8000-000000000001",
		Seq:  7,
		TsMs: 1700000000000,
		Intent: Intent{
			Type: RequestAnimation,
			Payload: state.Effect{
				Type:     state.EffectPotToWinner,
				ToSeat:   2,
				Amount:   1250,
				Geometry: state.Geometry{To: &state.Point{X: 10.5, Y: 20}},
				Meta:     map[string]string{"pot": "main"},
			},
		},
	}
	for _, c := range []Codec{CodecJSON, CodecProto} {
		data, err := Marshal(c, env)
		if err != nil {
			t.Fatalf("%s marshal: %v", c, err)
		}
		got, err := Unmarshal(c, data)
		if err != nil {
			t.Fatalf("%s unmarshal: %v", c, err)
		}
		if diff := cmp.Diff(env, got); diff != "" {
			t.Fatalf("%s envelope mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestParseCodec(t *testing.T) {
	if c, err := ParseCodec(""); err != nil || c != CodecJSON {
		t.Fatalf("empty codec = %v, %v", c, err)
	}
	if c, err := ParseCodec("proto"); err != nil || c != CodecProto {
		t.Fatalf("proto codec = %v, %v", c, err)
	}
	if _, err := ParseCodec("xml"); err == nil {
		t.Fatal("expected error for unknown codec")
	}
}
