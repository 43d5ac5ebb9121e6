// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	ts "github.com/asticode/go-astits"
	"github.com/haivision/srtgo"
	"github.com/q191201771/naza/pkg/nazalog"

	"github.com/q191201771/spdif/pkg/base"
	"github.com/q191201771/spdif/pkg/spdif"
)

// 作为SRT listener接收一路mpegts流，取出其中第一路压缩音频流，
// 封装成IEC 61937 burst流写入输出文件

type fileObserver struct {
	fp *os.File
}

func (o *fileObserver) OnSpdifBurst(b []byte, pts int64, dts int64, nbSamples int) {
	_, _ = o.fp.Write(b)
}

func main() {
	port, outFilename := parseFlag()

	out, err := os.Create(outFilename)
	nazalog.Assert(nil, err)
	defer out.Close()

	options := map[string]string{
		"transtype": "live",
	}
	sck := srtgo.NewSrtSocket("0.0.0.0", port, options)
	defer sck.Close()

	if err = sck.Listen(1); err != nil {
		nazalog.Fatalf("srt listen failed. err=%+v", err)
	}
	nazalog.Infof("srt listening. port=%d", port)

	socket, addr, err := sck.Accept()
	if err != nil {
		nazalog.Fatalf("srt accept failed. err=%+v", err)
	}
	defer socket.Close()
	nazalog.Infof("srt caller connected. addr=%s", addr.String())

	demuxer := ts.NewDemuxer(context.Background(), bufio.NewReader(socket))

	var muxer *spdif.Muxer
	var audioPid uint16
	var audioPt base.AvFramePt

	for {
		d, err := demuxer.NextData()
		if err != nil {
			nazalog.Warnf("demux ts finished. err=%+v", err)
			break
		}

		if d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				if muxer != nil {
					break
				}
				pt := frameTypeOfStreamType(es.StreamType)
				if pt == base.AvFramePtUnknown {
					continue
				}
				muxer, err = spdif.NewMuxer(pt, spdif.FormatSpdifLe, &fileObserver{fp: out})
				nazalog.Assert(nil, err)
				audioPid = es.ElementaryPID
				audioPt = pt
				nazalog.Infof("found audio stream. pid=%d, type=%s", audioPid, pt.ReadableString())
			}
			continue
		}

		if d.PES == nil || muxer == nil || d.FirstPacket.Header.PID != audioPid {
			continue
		}

		frame := base.AvFrame{
			PayloadType: audioPt,
			Payload:     d.PES.Data,
		}
		if d.PES.Header.OptionalHeader != nil && d.PES.Header.OptionalHeader.PTS != nil {
			frame.Pts = d.PES.Header.OptionalHeader.PTS.Base
			frame.Dts = frame.Pts
			if d.PES.Header.OptionalHeader.DTS != nil {
				frame.Dts = d.PES.Header.OptionalHeader.DTS.Base
			}
		}
		if err = muxer.FeedAvFrame(frame); err != nil {
			nazalog.Warnf("feed frame failed. err=%+v", err)
		}
	}

	if muxer != nil {
		muxer.Dispose()
	}
	nazalog.Info("bye.")
}

func frameTypeOfStreamType(st ts.StreamType) base.AvFramePt {
	switch st {
	case ts.StreamTypeAC3Audio:
		return base.AvFramePtAc3
	case ts.StreamTypeEAC3Audio:
		return base.AvFramePtEac3
	case ts.StreamTypeDTSAudio:
		return base.AvFramePtDts
	case ts.StreamTypeTRUEHDAudio:
		return base.AvFramePtTruehd
	}
	return base.AvFramePtUnknown
}

func parseFlag() (uint16, string) {
	p := flag.Int("p", 6001, "specify srt listen port")
	o := flag.String("o", "", "specify output spdif file")
	flag.Parse()
	if *o == "" {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, `Example:
  %s -p 6001 -o test.spdif
`, os.Args[0])
		os.Exit(1)
	}
	return uint16(*p), *o
}
