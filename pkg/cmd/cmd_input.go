package cmd

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip" //"compress/gzip"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

/// CmdInput
type CmdInput struct {
	Name   string
	File   *os.File
	Reader *gzip.Reader
	Zstd   *zstd.Decoder
	Bar    *pb.ProgressBar
	Fastq  *fastq.Reader
}

func (ci *CmdInput) Close() {
	if ci.Reader != nil {
		ci.Reader.Close()
	}

	if ci.Zstd != nil {
		ci.Zstd.Close()
	}

	if ci.Bar != nil {
		ci.Bar.Finish()
	}

	if ci.File != nil {
		ci.File.Close()
	}
}

// Read implements fastq.Source.
func (ci *CmdInput) Read() (*fastq.Record, error) {
	return ci.Fastq.Read()
}

// NewCmdInput opens name ("-" is stdin) and sniffs gzip or zstd magic bytes,
// so compressed data is recognised regardless of the file extension. A non-nil
// progress gets a byte progress bar over the raw file; stdin has no bar.
func NewCmdInput(name string, progress io.Writer) (ci *CmdInput, err error) {
	var (
		raw io.Reader
		br  *bufio.Reader
		hd  []byte
	)

	ci = new(CmdInput)
	ci.Name = name

	if ci.Name == "-" { // from stdin
		raw = os.Stdin
	} else {
		if ci.File, err = os.Open(ci.Name); err != nil {
			return nil, err
		}
		raw = ci.File

		if progress != nil {
			var info os.FileInfo
			if info, err = ci.File.Stat(); err != nil {
				ci.Close()
				return nil, err
			}
			ci.Bar = pb.New64(info.Size()).SetTemplate(pb.Full).
				Set(pb.Bytes, true).SetWriter(progress).Start()
			raw = ci.Bar.NewProxyReader(raw)
		}
	}

	br = bufio.NewReaderSize(raw, 1<<20)
	if hd, err = br.Peek(4); err != nil && err != io.EOF {
		ci.Close()
		return nil, err
	}
	err = nil

	switch {
	case bytes.HasPrefix(hd, gzipMagic): // read gzipped file
		if ci.Reader, err = gzip.NewReader(br); err != nil {
			ci.Close()
			return nil, err
		}
		ci.Fastq = fastq.NewReader(ci.Reader)
	case bytes.HasPrefix(hd, zstdMagic):
		if ci.Zstd, err = zstd.NewReader(br); err != nil {
			ci.Close()
			return nil, err
		}
		ci.Fastq = fastq.NewReader(ci.Zstd)
	default:
		ci.Fastq = fastq.NewReader(br) // read text file
	}

	return ci, nil
}
