package audio

import (
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// mp3PacketBytes is how much decoded PCM one ReadPacket requests:
// 1024 stereo frames of 16-bit samples.
const mp3PacketBytes = 1024 * 4

// mp3Source decodes MP3 files. go-mp3 always emits interleaved 16-bit
// stereo, so the stereo conversion here is just sample scaling.
type mp3Source struct {
	decoder *mp3.Decoder
	file    *os.File
	buf     []byte
}

func newMP3Source(path string) (packetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNoAudioTrack, err)
	}

	return &mp3Source{
		decoder: decoder,
		file:    f,
		buf:     make([]byte, mp3PacketBytes),
	}, nil
}

func (s *mp3Source) ReadPacket() ([]float32, error) {
	n, err := s.decoder.Read(s.buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", errPacketDecode, err)
	}

	// 16-bit signed little-endian, already stereo interleaved
	samples := make([]float32, 0, n/2)
	for i := 0; i+1 < n; i += 2 {
		v := int16(s.buf[i]) | int16(s.buf[i+1])<<8
		samples = append(samples, float32(v)/32768.0)
	}
	return samples, nil
}

func (s *mp3Source) SampleRate() int {
	return s.decoder.SampleRate()
}

func (s *mp3Source) Close() error {
	return s.file.Close()
}
