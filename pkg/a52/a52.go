// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package a52

import (
	"github.com/q191201771/naza/pkg/nazabits"

	"github.com/q191201771/spdif/pkg/base"
)

// AC3(A/52)以及Enhanced AC3(E-AC3, A/52 Annex E)的sync frame头解析
//
// <ATSC A/52:2018>
// <5.4.1 syncinfo>, <5.4.2 bsi>
// <Annex E E2.3.1 syncinfo, bsi>

const (
	// SyncwordA52 AC3和E-AC3共用的syncword
	SyncwordA52 = 0x0B77

	// E-AC3 bsi中的strmtyp字段
	StreamTypeIndependent = 0
	StreamTypeDependent   = 1
	StreamTypeAc3Convert  = 2

	// 每个audio block固定256个采样点
	NbSamplesPerBlock = 256

	// AC3的sync frame固定6个block
	Ac3NbBlocks = 6

	minHeaderLength = 6
)

var sampleRates = [...]int{48000, 44100, 32000}

// 半速采样率，E-AC3 fscod==3时由fscod2选择
var reducedSampleRates = [...]int{24000, 22050, 16000}

// frmsizecod>>1 对应的码率，单位kbps
var bitRates = [...]int{
	32, 40, 48, 56, 64, 80, 96, 112, 128,
	160, 192, 224, 256, 320, 384, 448, 512, 576, 640,
}

var nbBlocksTable = [...]int{1, 2, 3, 6}

// HeaderContext 一个AC3或E-AC3 sync frame头中，封装S/PDIF所需的字段
type HeaderContext struct {
	// FrameSize 整个sync frame的大小，单位字节
	FrameSize int

	// NbSamples 该sync frame的时长，单位采样点数
	NbSamples int

	SampleRate int

	// IsEac3 是否为Enhanced AC3
	IsEac3 bool

	// Bsmod AC3 bsi中的bitstream mode，3bit，只在IsEac3为false时有意义
	Bsmod uint8

	// 以下字段只在IsEac3为true时有意义

	// StreamType strmtyp字段，取值见StreamTypeXxx
	StreamType uint8

	SubstreamId uint8

	// NbBlocksPerSyncFrame 该sync frame包含的audio block数量，1、2、3或6
	NbBlocksPerSyncFrame int
}

// ParseHeader 解析b的起始处的AC3或E-AC3 sync frame头
//
// @param b: 函数调用结束后，内部不持有该内存块
func ParseHeader(b []byte) (*HeaderContext, error) {
	if len(b) < minHeaderLength {
		return nil, base.ErrShortBuffer
	}
	if b[0] != 0x0B || b[1] != 0x77 {
		return nil, base.ErrA52InvalidSyncword
	}

	// AC3和E-AC3的bsid位于相同位置
	bsid := b[5] >> 3
	switch {
	case bsid <= 10:
		return parseAc3(b)
	case bsid <= 16:
		return parseEac3(b)
	}
	return nil, base.ErrA52InvalidBsid
}

// ---------------------------------------------------------------------------------------------------------------------

// <ATSC A/52:2018>
// --------------------------------
// syncword   [16b]
// crc1       [16b]
// fscod      [2b]
// frmsizecod [6b]
// bsid       [5b]
// bsmod      [3b]
// --------------------------------
func parseAc3(b []byte) (*HeaderContext, error) {
	br := nazabits.NewBitReader(b[4:])
	fscod, _ := br.ReadBits8(2)
	frmsizecod, _ := br.ReadBits8(6)
	_, _ = br.ReadBits8(5) // bsid
	bsmod, _ := br.ReadBits8(3)

	if fscod == 3 || int(frmsizecod>>1) >= len(bitRates) {
		return nil, base.ErrA52InvalidHeader
	}
	rate := bitRates[frmsizecod>>1]

	var words int
	switch fscod {
	case 0: // 48kHz
		words = 2 * rate
	case 1: // 44.1kHz
		words = (320*rate)/147 + int(frmsizecod&1)
	case 2: // 32kHz
		words = 3 * rate
	}

	return &HeaderContext{
		FrameSize:  words * 2,
		NbSamples:  Ac3NbBlocks * NbSamplesPerBlock,
		SampleRate: sampleRates[fscod],
		Bsmod:      bsmod,
	}, nil
}

// <ATSC A/52:2018 Annex E>
// --------------------------------
// syncword    [16b]
// strmtyp     [2b]
// substreamid [3b]
// frmsiz      [11b]
// fscod       [2b]
// fscod2或numblkscod [2b]
// --------------------------------
func parseEac3(b []byte) (*HeaderContext, error) {
	br := nazabits.NewBitReader(b[2:])
	strmtyp, _ := br.ReadBits8(2)
	substreamid, _ := br.ReadBits8(3)
	frmsiz, _ := br.ReadBits16(11)
	fscod, _ := br.ReadBits8(2)

	var sampleRate int
	var nbBlocks int
	if fscod == 3 {
		fscod2, _ := br.ReadBits8(2)
		if fscod2 == 3 {
			return nil, base.ErrA52InvalidHeader
		}
		sampleRate = reducedSampleRates[fscod2]
		nbBlocks = 6
	} else {
		numblkscod, _ := br.ReadBits8(2)
		sampleRate = sampleRates[fscod]
		nbBlocks = nbBlocksTable[numblkscod]
	}

	if strmtyp == 3 {
		return nil, base.ErrA52InvalidHeader
	}

	return &HeaderContext{
		FrameSize:            (int(frmsiz) + 1) * 2,
		NbSamples:            nbBlocks * NbSamplesPerBlock,
		SampleRate:           sampleRate,
		IsEac3:               true,
		StreamType:           strmtyp,
		SubstreamId:          substreamid,
		NbBlocksPerSyncFrame: nbBlocks,
	}, nil
}
