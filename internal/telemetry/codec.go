// Package telemetry ships frames to renderers running outside the
// simulation process.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ukydev/ring-traffic/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Encoding names a wire format for frames.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingBSON Encoding = "bson"
)

var ErrUnknownEncoding = errors.New("unknown frame encoding")

// ParseEncoding parses the configuration form of an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingJSON, EncodingBSON:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// ContentType is the MIME type of an encoding.
func (e Encoding) ContentType() string {
	if e == EncodingBSON {
		return "application/bson"
	}
	return "application/json"
}

// EncodeFrame serialises a frame.
func EncodeFrame(enc Encoding, frame models.Frame) ([]byte, error) {
	switch enc {
	case EncodingJSON:
		data, err := json.Marshal(frame)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frame: %w", err)
		}
		return data, nil
	case EncodingBSON:
		data, err := bson.Marshal(frame)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frame: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
}

// DecodeFrame is the inverse of EncodeFrame.
func DecodeFrame(enc Encoding, data []byte) (models.Frame, error) {
	var frame models.Frame
	var err error
	switch enc {
	case EncodingJSON:
		err = json.Unmarshal(data, &frame)
	case EncodingBSON:
		err = bson.Unmarshal(data, &frame)
	default:
		return frame, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	if err != nil {
		return frame, fmt.Errorf("failed to unmarshal frame: %w", err)
	}
	return frame, nil
}
