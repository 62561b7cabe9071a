// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tex

package tex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// readFull reads exactly len(buf) bytes; a short stream is ErrTruncatedInput.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes: %w", ErrTruncatedInput, len(buf), err)
		}
		return err
	}

	return nil
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}

	// #nosec G115 -- reinterpreting the wire bits as signed.
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readFloat32(r io.Reader) (float32, error) {
	bits, err := readUint32(r)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// readBool reads an int32 flag that must be 0 or 1.
func readBool(r io.Reader) (bool, error) {
	v, err := readInt32(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: flag value %d (expected 0 or 1)", ErrFormat, v)
	}
}

// readLPString reads an int32 length-prefixed string of at most maxLen bytes.
func readLPString(r io.Reader, maxLen int) (string, error) {
	n, err := readInt32(r)
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > maxLen {
		return "", fmt.Errorf("%w: string length %d (max %d)", ErrFormat, n, maxLen)
	}

	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	// #nosec G115 -- reinterpreting signed bits for the wire.
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeFloat32(w io.Writer, v float32) error {
	return writeUint32(w, math.Float32bits(v))
}

func writeLPString(w io.Writer, s string, maxLen int) error {
	if len(s) > maxLen {
		return fmt.Errorf("%w: string length %d (max %d)", ErrFormat, len(s), maxLen)
	}
	if err := writeInt32(w, int32(len(s))); err != nil { // #nosec G115 -- bounded by maxLen.
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeBytes writes an int32 byte length followed by data.
func writeBytes(w io.Writer, data []byte) error {
	n, err := i32FromInt(len(data))
	if err != nil {
		return err
	}
	if err := writeInt32(w, n); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
