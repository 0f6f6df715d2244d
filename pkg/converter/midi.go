package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const maxTempoMicros = 0xFFFFFF

// MIDIConverter handles MIDI file parsing and generation
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 480,
		tempo:           120.0,
	}
}

// GenerateMIDI creates a single-track SMF with one block chord per voicing
func (m *MIDIConverter) GenerateMIDI(p *Progression) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil progression")
	}
	if len(p.Chords) == 0 {
		return nil, errors.New("empty progression")
	}

	tempo := p.Tempo
	if tempo <= 0 {
		tempo = m.tempo
	}
	beats := p.BeatsPerChord
	if beats <= 0 {
		beats = 4
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track

	// Sequence name (FF 03 len text)
	if name := p.Name; name != "" {
		if len(name) > 127 {
			name = name[:127]
		}
		track.Add(0, smf.Message(append([]byte{0xFF, 0x03, byte(len(name))}, name...)))
	}

	// Tempo (FF 51 03 tttttt), a 24-bit count of microseconds per beat
	usPerBeat := 60000000.0 / tempo
	if usPerBeat < 1 || usPerBeat > maxTempoMicros {
		return nil, fmt.Errorf("%w: tempo %.2f BPM", ErrOutOfRange, tempo)
	}
	microsecondsPerBeat := uint32(usPerBeat)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// Time signature 4/4
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	channel := uint8(0)
	chordTicks := uint32(m.ticksPerQuarter) * uint32(beats)

	for _, v := range p.Chords {
		if len(v.Keys) == 0 {
			// a rest still takes its slot
			track.Add(chordTicks, smf.Message([]byte{0xFF, 0x06, 0x00}))
			continue
		}
		velocity := v.Velocity
		if velocity == 0 {
			velocity = DefaultVelocity
		}
		for _, key := range v.Keys {
			track.Add(0, midi.NoteOn(channel, key, velocity))
		}
		for i, key := range v.Keys {
			delta := uint32(0)
			if i == 0 {
				delta = chordTicks
			}
			track.Add(delta, midi.NoteOff(channel, key))
		}
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMIDI reads block chords back: note-ons sharing a tick form one voicing
func (m *MIDIConverter) ParseMIDI(data []byte) (*Progression, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		m.ticksPerQuarter = mt.Resolution()
	}

	p := &Progression{Tempo: m.tempo}
	onsets := map[int64][]uint8{}
	velocities := map[int64]uint8{}

	for _, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			msg := ev.Message

			switch {
			case len(msg) >= 3 && msg[0] == 0xFF && msg[1] == 0x03:
				n := int(msg[2])
				if len(msg) >= 3+n {
					p.Name = string(msg[3 : 3+n])
				}
			case len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03:
				microsecondsPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if microsecondsPerBeat > 0 {
					m.tempo = 60000000.0 / float64(microsecondsPerBeat)
					p.Tempo = m.tempo
				}
			case len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0:
				onsets[tick] = append(onsets[tick], msg[1])
				velocities[tick] = msg[2]
			}
		}
	}

	ticks := make([]int64, 0, len(onsets))
	for t := range onsets {
		ticks = append(ticks, t)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })

	for _, t := range ticks {
		keys := onsets[t]
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		p.Chords = append(p.Chords, Voicing{Keys: keys, Velocity: velocities[t]})
	}

	p.BeatsPerChord = 4
	if len(ticks) > 1 && m.ticksPerQuarter > 0 {
		p.BeatsPerChord = int((ticks[1] - ticks[0]) / int64(m.ticksPerQuarter))
	}
	return p, nil
}

// WriteMIDIFile writes a progression to a file
func (m *MIDIConverter) WriteMIDIFile(p *Progression, filename string) error {
	data, err := m.GenerateMIDI(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
