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
	"github.com/q191201771/naza/pkg/nazalog"

	"github.com/q191201771/spdif/pkg/a52"
	"github.com/q191201771/spdif/pkg/base"
	"github.com/q191201771/spdif/pkg/dts"
	"github.com/q191201771/spdif/pkg/spdif"
)

// 从mpegts文件中取出第一路压缩音频流（AC3、E-AC3、DTS、TrueHD），
// 封装成IEC 61937 burst流写入输出文件

type fileObserver struct {
	fp *os.File
}

func (o *fileObserver) OnSpdifBurst(b []byte, pts int64, dts int64, nbSamples int) {
	_, _ = o.fp.Write(b)
}

func main() {
	inFilename, outFilename := parseFlag()

	in, err := os.Open(inFilename)
	nazalog.Assert(nil, err)
	defer in.Close()
	out, err := os.Create(outFilename)
	nazalog.Assert(nil, err)
	defer out.Close()

	demuxer := ts.NewDemuxer(context.Background(), bufio.NewReader(in))

	var muxer *spdif.Muxer
	var audioPid uint16
	var audioPt base.AvFramePt

	for {
		d, err := demuxer.NextData()
		if err != nil {
			if err == ts.ErrNoMorePackets {
				break
			}
			nazalog.Fatalf("demux ts failed. err=%+v", err)
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
		}
		if d.PES.Header.OptionalHeader != nil && d.PES.Header.OptionalHeader.PTS != nil {
			frame.Pts = d.PES.Header.OptionalHeader.PTS.Base
			frame.Dts = frame.Pts
			if d.PES.Header.OptionalHeader.DTS != nil {
				frame.Dts = d.PES.Header.OptionalHeader.DTS.Base
			}
		}

		// 一个PES包中可能有多个sync frame，逐帧切开喂给muxer
		for _, payload := range splitFrames(audioPt, d.PES.Data) {
			frame.Payload = payload
			if err = muxer.FeedAvFrame(frame); err != nil {
				nazalog.Warnf("feed frame failed. err=%+v", err)
			}
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

func splitFrames(pt base.AvFramePt, b []byte) [][]byte {
	var frames [][]byte
	for len(b) > 0 {
		var size int
		switch pt {
		case base.AvFramePtAc3, base.AvFramePtEac3:
			ctx, err := a52.ParseHeader(b)
			if err != nil {
				return frames
			}
			size = ctx.FrameSize
		case base.AvFramePtDts:
			ctx, err := dts.ParseHeader(b)
			if err != nil {
				return frames
			}
			size = ctx.FrameSize
		default:
			// TrueHD的帧切分依赖容器层，整个PES作为一帧
			return append(frames, b)
		}
		if size > len(b) {
			return frames
		}
		frames = append(frames, b[:size])
		b = b[size:]
	}
	return frames
}

func parseFlag() (string, string) {
	i := flag.String("i", "", "specify mpegts file")
	o := flag.String("o", "", "specify output spdif file")
	flag.Parse()
	if *i == "" || *o == "" {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, `Example:
  %s -i test.ts -o test.spdif
`, os.Args[0])
		os.Exit(1)
	}
	return *i, *o
}
