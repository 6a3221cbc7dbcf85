// Package snapshot exports and imports ledgers as zstd-compressed JSON. The
// first line of the stream is a JSON header, the second the cell table.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Version of the snapshot format
const Version = 1

type Header struct {
	Version   int       `json:"version"`
	Game      int       `json:"game"`
	Turn      int       `json:"turn"`
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
}

type CellV1 struct {
	Nation   int `json:"n"`
	Region   int `json:"r"`
	Good     int `json:"g"`
	Quantity int `json:"q"`
}

type LedgerV1 struct {
	Header Header   `json:"header"`
	Cells  []CellV1 `json:"cells"`
}

// ErrDigestMismatch is returned when imported cells do not hash to the
// digest recorded in the header
type ErrDigestMismatch struct {
	Want string
	Got  string
}

func (e *ErrDigestMismatch) Error() string {
	return fmt.Sprintf("snapshot digest mismatch: header %s, cells %s", e.Want, e.Got)
}

// FromLedger captures every non-zero cell of a ledger
func FromLedger(ledger *goods.Ledger, turn int, now time.Time) LedgerV1 {
	snap := LedgerV1{
		Header: Header{
			Version:   Version,
			Game:      int(ledger.Game()),
			Turn:      turn,
			Digest:    ledger.Digest(),
			CreatedAt: now.UTC(),
		},
	}
	for n := shared.NationFirst; n <= shared.NationLast; n++ {
		for r := shared.RegionFirst; r <= shared.RegionLast; r++ {
			for g := goods.GoodFirst; g <= goods.GoodLast; g++ {
				if qty := ledger.Get(n, r, g); qty != 0 {
					snap.Cells = append(snap.Cells, CellV1{Nation: int(n), Region: int(r), Good: int(g), Quantity: qty})
				}
			}
		}
	}
	return snap
}

// ToLedger rebuilds the ledger and checks it against the header digest
func (s LedgerV1) ToLedger() (*goods.Ledger, error) {
	if s.Header.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Header.Version)
	}
	ledger := goods.NewLedger(shared.GameID(s.Header.Game))
	for _, c := range s.Cells {
		n, r, g := shared.NationID(c.Nation), shared.RegionID(c.Region), goods.Good(c.Good)
		if !n.IsValid() || !r.IsValid() || !g.IsValid() {
			return nil, &goods.ErrInvalidCell{Nation: n, Region: r, Good: g}
		}
		ledger.Set(n, r, g, c.Quantity)
	}
	if got := ledger.Digest(); got != s.Header.Digest {
		return nil, &ErrDigestMismatch{Want: s.Header.Digest, Got: got}
	}
	return ledger, nil
}

// Write encodes a snapshot onto w
func Write(w io.Writer, snap LedgerV1) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("json encode header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(snap.Cells); err != nil {
		enc.Close()
		return fmt.Errorf("json encode cells: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes a snapshot from r
func Read(r io.Reader) (LedgerV1, error) {
	var snap LedgerV1
	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &snap.Header); err != nil {
		return snap, fmt.Errorf("json decode header: %w", err)
	}
	if err := json.NewDecoder(br).Decode(&snap.Cells); err != nil {
		return snap, fmt.Errorf("json decode cells: %w", err)
	}
	return snap, nil
}

// WriteFile writes a snapshot to path, creating parent directories
func WriteFile(path string, snap LedgerV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from path
func ReadFile(path string) (LedgerV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return LedgerV1{}, err
	}
	defer f.Close()
	return Read(f)
}
