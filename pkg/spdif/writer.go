// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package spdif

import (
	"github.com/q191201771/naza/pkg/bele"

	"github.com/q191201771/spdif/pkg/base"
)

// burstWriter 一个进行中的burst的写入缓冲
//
// 固定容量，按字节偏移顺序写入，写满（finalize）后整体交给上层。
// 输出字节序在session建立时确定一次，之后所有16bit word的写入都遵循它。
type burstWriter struct {
	outBigEndian bool

	buf []byte
	off int

	// 继承自burst的第一个输入帧
	pts int64
	dts int64

	// 该burst对外声明的采样点数
	nbSamples int
}

func (w *burstWriter) inProgress() bool {
	return w.buf != nil
}

func (w *burstWriter) remaining() int {
	return len(w.buf) - w.off
}

// init 开始一个新的burst，前8字节预留给burst头
//
// 注意，调用前必须没有进行中的burst
func (w *burstWriter) init(capacity int, frame base.AvFrame, nbSamples int) error {
	if w.buf != nil {
		return base.ErrSpdifWriteOverflow
	}
	w.buf = make([]byte, capacity)
	w.off = headerSize
	w.pts = frame.Pts
	w.dts = frame.Dts
	w.nbSamples = nbSamples
	return nil
}

// writeData 写入数据，必要时按word交换字节序
//
// 末尾的单个落单字节提升为一个完整的16bit word（落单字节放在高8bit），
// 以输出字节序写入，保证16bit word承载下不丢字节
//
// @param inBigEndian: 源数据的字节序
func (w *burstWriter) writeData(in []byte, inBigEndian bool) error {
	n := len(in) &^ 1
	if w.remaining() < n {
		return base.ErrSpdifWriteOverflow
	}

	out := w.buf[w.off:]
	if inBigEndian != w.outBigEndian {
		for i := 0; i < n; i += 2 {
			out[i] = in[i+1]
			out[i+1] = in[i]
		}
	} else {
		copy(out, in[:n])
	}
	w.off += n

	if len(in)&1 != 0 {
		if w.remaining() < 2 {
			return base.ErrSpdifWriteOverflow
		}
		w.put16(w.buf[w.off:], uint16(in[len(in)-1])<<8)
		w.off += 2
	}
	return nil
}

// writePadding 填充size个0
func (w *burstWriter) writePadding(size int) error {
	if w.remaining() < size {
		return base.ErrSpdifWriteOverflow
	}
	out := w.buf[w.off : w.off+size]
	for i := range out {
		out[i] = 0
	}
	w.off += size
	return nil
}

// finalize 在缓冲起始处打上burst头，并将剩余空间填0
//
// @param dataType:  为0时不写burst头（容器中已无burst头空间的场景，比如DTS-in-WAV）
// @param lengthMul: burst头中长度字段的单位，1=字节，8=bit
func (w *burstWriter) finalize(dataType uint16, lengthMul int) {
	if dataType != 0 {
		w.put16(w.buf[0:], syncword1)
		w.put16(w.buf[2:], syncword2)
		w.put16(w.buf[4:], dataType)
		w.put16(w.buf[6:], uint16((w.off-headerSize)*lengthMul))
	}

	if w.off < len(w.buf) {
		_ = w.writePadding(len(w.buf) - w.off)
	}
}

// dropHeader 取消头部的8字节预留，用于不写burst头的场景
func (w *burstWriter) dropHeader() {
	w.off = 0
}

// release 取出完成的burst，writer回到空闲状态
func (w *burstWriter) release() (b []byte, pts int64, dts int64, nbSamples int) {
	b, pts, dts, nbSamples = w.buf, w.pts, w.dts, w.nbSamples
	w.reset()
	return
}

func (w *burstWriter) reset() {
	w.buf = nil
	w.off = 0
}

// ---------------------------------------------------------------------------------------------------------------------

func (w *burstWriter) put16(out []byte, v uint16) {
	if w.outBigEndian {
		bele.BePutUint16(out, v)
	} else {
		out[0] = byte(v)
		out[1] = byte(v >> 8)
	}
}
