package hillchart

import (
	"bytes"
	"encoding/json"
	"log"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Version is the type for the version of the encoded scene format.
type Version uint8

const (
	_ Version = iota
	// Version1 encodes the scene as JSON.
	Version1
	// Version2 encodes the scene as CBOR.
	Version2
)

// CurrentVersion is the version that scenes will be encoded as.
const CurrentVersion = Version2

// this is never a valid JSON character
const versionBytePrefix = 0xFE

// ErrUnknownVersion is returned when decoding a scene of an unknown version.
var ErrUnknownVersion = errors.New("unknown scene version")

// cborEnc sorts map keys so identical scenes always encode to identical bytes.
var cborEnc cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		log.Panicln("invalid cbor options:", err)
	}
	cborEnc = em
}

// EncodeScene encodes the scene in the current version.
func EncodeScene(scene Scene) ([]byte, error) {
	return EncodeSceneVersion(scene, CurrentVersion)
}

// EncodeSceneVersion encodes the scene in the given version.
func EncodeSceneVersion(scene Scene, v Version) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(32 * 1024) // most of it is the curve
	err := encodeSceneBuf(scene, v, &buf)
	return buf.Bytes(), err
}

func encodeSceneBuf(scene Scene, v Version, buf *bytes.Buffer) error {
	buf.WriteByte(versionBytePrefix)
	buf.WriteByte(byte(v))

	switch v {
	case Version1:
		if err := json.NewEncoder(buf).Encode(scene); err != nil {
			return errors.Wrap(err, "failed to marshal json")
		}
	case Version2:
		if err := cborEnc.NewEncoder(buf).Encode(scene); err != nil {
			return errors.Wrap(err, "failed to marshal cbor")
		}
	default:
		return errors.Wrapf(ErrUnknownVersion, "version %d", v)
	}

	return nil
}

// DecodeScene decodes a scene encoded by EncodeScene. Input without the
// version prefix is decoded as plain JSON.
func DecodeScene(b []byte, dst *Scene) (err error) {
	if len(b) < 2 || b[0] != versionBytePrefix {
		err = json.Unmarshal(b, dst)
		return
	}

	version := Version(b[1])
	b = b[2:]

	switch version {
	case Version1:
		err = json.Unmarshal(b, dst)
	case Version2:
		err = cbor.Unmarshal(b, dst)
	default:
		err = errors.Wrapf(ErrUnknownVersion, "version %d", version)
	}

	return
}
