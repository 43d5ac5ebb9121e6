// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package dts

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabits"

	"github.com/q191201771/spdif/pkg/base"
)

// DTS core sync frame头解析
//
// <ETSI TS 102 114>
// <5.3.1 Frame Header>
//
// DTS core存在4种承载形式：16bit大端、16bit小端、14bit大端、14bit小端。
// 14bit形式时，每个16bit word只有低14bit有效。

const (
	// 4种承载形式的sync marker，均为流的前4个字节
	syncword16Be = 0x7FFE8001
	syncword16Le = 0xFE7F0180
	syncword14Be = 0x1FFFE800
	syncword14Le = 0xFF1F00E8

	minHeaderLength = 12
)

// HeaderContext 一个DTS core sync frame头中，封装S/PDIF所需的字段
type HeaderContext struct {
	// FrameSize 整个sync frame的大小，单位字节。14bit承载时已按16/14放大
	FrameSize int

	// FrameLength 该sync frame的时长，单位采样点数
	FrameLength int

	// BigEndian 源数据是否为大端
	BigEndian bool
}

// ParseHeader 解析b的起始处的DTS core sync frame头
//
// @param b: 函数调用结束后，内部不持有该内存块
func ParseHeader(b []byte) (*HeaderContext, error) {
	if len(b) < minHeaderLength {
		return nil, base.ErrShortBuffer
	}

	var (
		bigEndian bool
		is14b     bool
	)
	switch bele.BeUint32(b) {
	case syncword16Be:
		bigEndian = true
	case syncword16Le:
		// noop
	case syncword14Be:
		bigEndian = true
		is14b = true
	case syncword14Le:
		is14b = true
	default:
		return nil, base.ErrDtsInvalidSyncword
	}

	// 统一转换成16bit大端后再解析
	h := make([]byte, 0, minHeaderLength)
	if !bigEndian {
		for i := 0; i+1 < minHeaderLength; i += 2 {
			h = append(h, b[i+1], b[i])
		}
	} else {
		h = append(h, b[:minHeaderLength]...)
	}
	if is14b {
		h = unpack14(h)
	}

	// --------------------------------
	// syncword [32b]
	// ftype    [1b]
	// short    [5b]
	// cpf      [1b]
	// nblks    [7b]
	// fsize    [14b]
	// --------------------------------
	br := nazabits.NewBitReader(h[4:])
	_, _ = br.ReadBits8(7) // ftype, short, cpf
	nblks, _ := br.ReadBits8(7)
	fsize, _ := br.ReadBits16(14)

	if fsize < 95 {
		return nil, base.ErrDtsInvalidSyncword
	}

	frameSize := int(fsize) + 1
	if is14b {
		frameSize = frameSize * 16 / 14
	}

	return &HeaderContext{
		FrameSize:   frameSize,
		FrameLength: (int(nblks) + 1) * 32,
		BigEndian:   bigEndian,
	}, nil
}

// ---------------------------------------------------------------------------------------------------------------------

// 将14bit承载的数据还原，输入为16bit大端序的word流，每个word取低14bit重新紧凑排列
func unpack14(b []byte) []byte {
	out := make([]byte, len(b))
	bw := nazabits.NewBitWriter(out)
	n := 0
	for i := 0; i+1 < len(b); i += 2 {
		w := bele.BeUint16(b[i:]) & 0x3FFF
		bw.WriteBits16(14, w)
		n += 14
	}
	return out[:n/8]
}
