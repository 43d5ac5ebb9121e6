// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package spdif

import (
	"github.com/q191201771/spdif/pkg/base"
)

type IMuxerObserver interface {
	// OnSpdifBurst 一个完整的IEC 61937 burst
	//
	// @param b: 回调结束后，spdif.Muxer 不再使用这块内存块
	//
	// @param pts, dts: 取自该burst的第一个输入帧
	//
	// @param nbSamples: 该burst对外声明的采样点数
	//
	OnSpdifBurst(b []byte, pts int64, dts int64, nbSamples int)
}

// Muxer 输入压缩音频帧，输出IEC 61937 burst
//
// 一个Muxer对应一路流，内部最多持有一个进行中的burst。
// 单协程模型，所有方法都应该在同一个协程调用；多路流使用多个Muxer，互相没有共享状态。
//
// 输入帧必须按解码顺序输入，codec在创建时固定；发生seek等不连续时，
// 调用方应先调用 Flush 再继续输入
type Muxer struct {
	UniqueKey string

	pt       base.AvFramePt
	observer IMuxerObserver

	writer burstWriter

	// E-AC3：substream 0已累积的audio block数，凑满6个时burst完成
	eac3NbBlocksSubstream0 int

	// TrueHD：MAT frame序号，[0, 24)
	truehdFrameCount int
}

// NewMuxer
//
// @param pt:     输入codec，AC3、E-AC3、MLP、TrueHD、DTS之一
// @param format: 输出承载格式，决定字节序
func NewMuxer(pt base.AvFramePt, format Format, observer IMuxerObserver) (*Muxer, error) {
	switch pt {
	case base.AvFramePtAc3, base.AvFramePtEac3, base.AvFramePtMlp, base.AvFramePtTruehd, base.AvFramePtDts:
		// noop
	default:
		return nil, base.ErrSpdifUnsupportedConfig
	}
	if format != FormatSpdifLe && format != FormatSpdifBe {
		return nil, base.ErrSpdifUnsupportedConfig
	}

	uk := base.GenUkSpdifMuxer()
	m := &Muxer{
		UniqueKey: uk,
		pt:        pt,
		observer:  observer,
	}
	m.writer.outBigEndian = format == FormatSpdifBe
	Log.Infof("[%s] lifecycle new spdif muxer. pt=%s, format=%s",
		uk, pt.ReadableString(), format.ReadableString())
	return m, nil
}

// FeedAvFrame
//
// @param frame: frame.Payload 调用结束后，函数内部不会持有这块内存
//
// @return: burst尚未凑满时返回nil且无回调；burst完成时通过 IMuxerObserver 回调吐出；
//          输入帧不合法时返回错误，此时进行中的burst和累积状态已被丢弃（等价于Flush），
//          下一帧从干净状态开始
//
func (m *Muxer) FeedAvFrame(frame base.AvFrame) error {
	var done bool
	var err error
	switch m.pt {
	case base.AvFramePtAc3:
		done, err = m.writeAc3(frame)
	case base.AvFramePtEac3:
		done, err = m.writeEac3(frame)
	case base.AvFramePtMlp, base.AvFramePtTruehd:
		done, err = m.writeTruehd(frame)
	case base.AvFramePtDts:
		done, err = m.writeDts(frame)
	}

	if err != nil {
		m.Flush()
		return err
	}
	if done {
		b, pts, dts, nbSamples := m.writer.release()
		m.observer.OnSpdifBurst(b, pts, dts, nbSamples)
	}
	return nil
}

// Flush 丢弃进行中的burst，所有codec相关的累积状态归零
//
// 可以在任意时刻调用（比如seek），幂等
func (m *Muxer) Flush() {
	m.writer.reset()
	m.eac3NbBlocksSubstream0 = 0
	m.truehdFrameCount = 0
}

func (m *Muxer) Dispose() {
	m.Flush()
}
