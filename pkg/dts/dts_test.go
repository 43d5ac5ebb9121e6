// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package dts_test

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/naza/pkg/nazabits"

	"github.com/q191201771/spdif/pkg/base"
	. "github.com/q191201771/spdif/pkg/dts"
)

// 构造16bit大端承载的DTS core sync frame头
//
// @param frameSize:   单位字节
// @param frameLength: 单位采样点数
func buildHeader16Be(frameSize int, frameLength int) []byte {
	b := make([]byte, 14)
	nblks := frameLength/32 - 1
	fsize := frameSize - 1
	b[0] = 0x7F
	b[1] = 0xFE
	b[2] = 0x80
	b[3] = 0x01
	b[4] = 1<<7 | 31<<2 | uint8(nblks>>6)&0x1 // ftype=1, short=31, cpf=0
	b[5] = uint8(nblks&0x3F)<<2 | uint8(fsize>>12)&0x3
	b[6] = uint8(fsize >> 4)
	b[7] = uint8(fsize&0xF) << 4
	return b
}

func swapPairs(b []byte) []byte {
	out := make([]byte, len(b))
	for i := 0; i+1 < len(b); i += 2 {
		out[i] = b[i+1]
		out[i+1] = b[i]
	}
	return out
}

// 将16bit流重新打包成14bit承载：每14bit放入一个16bit word的低14bit，高2bit符号扩展
func pack14(b []byte) []byte {
	out := make([]byte, len(b)/14*16+16)
	br := nazabits.NewBitReader(b)
	n := 0
	for i := 0; i+14 <= len(b)*8; i += 14 {
		w, _ := br.ReadBits16(14)
		if w&0x2000 != 0 {
			w |= 0xC000
		}
		out[n] = uint8(w >> 8)
		out[n+1] = uint8(w)
		n += 2
	}
	return out[:n]
}

func TestParseHeader16(t *testing.T) {
	be := buildHeader16Be(1008, 512)
	ctx, err := ParseHeader(be)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1008, ctx.FrameSize)
	assert.Equal(t, 512, ctx.FrameLength)
	assert.Equal(t, true, ctx.BigEndian)

	ctx, err = ParseHeader(swapPairs(be))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1008, ctx.FrameSize)
	assert.Equal(t, 512, ctx.FrameLength)
	assert.Equal(t, false, ctx.BigEndian)
}

func TestParseHeader14(t *testing.T) {
	// 994可被7整除，放大16/14后无舍入
	be14 := pack14(buildHeader16Be(994, 1024))
	assert.Equal(t, uint8(0x1F), be14[0])
	assert.Equal(t, uint8(0xFF), be14[1])
	assert.Equal(t, uint8(0xE8), be14[2])
	assert.Equal(t, uint8(0x00), be14[3])

	ctx, err := ParseHeader(be14)
	assert.Equal(t, nil, err)
	assert.Equal(t, 994*16/14, ctx.FrameSize)
	assert.Equal(t, 1024, ctx.FrameLength)
	assert.Equal(t, true, ctx.BigEndian)

	ctx, err = ParseHeader(swapPairs(be14))
	assert.Equal(t, nil, err)
	assert.Equal(t, 994*16/14, ctx.FrameSize)
	assert.Equal(t, false, ctx.BigEndian)
}

func TestParseHeaderError(t *testing.T) {
	_, err := ParseHeader([]byte{0x7F, 0xFE})
	assert.Equal(t, base.ErrShortBuffer, err)

	b := buildHeader16Be(1008, 512)
	b[0] = 0x7E
	_, err = ParseHeader(b)
	assert.Equal(t, base.ErrDtsInvalidSyncword, err)

	// fsize太小
	_, err = ParseHeader(buildHeader16Be(90, 512))
	assert.Equal(t, base.ErrDtsInvalidSyncword, err)
}
