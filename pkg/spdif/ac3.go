// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package spdif

import (
	"github.com/q191201771/spdif/pkg/a52"
	"github.com/q191201771/spdif/pkg/base"
)

const (
	// AC3一帧固定1536个采样点
	ac3FrameNbSamples = 1536

	// AC3 burst固定使用A/52最大的6 block帧大小，1536个32bit word
	ac3BurstSize = ac3FrameNbSamples * 4
)

// 一帧输入对应一个burst，没有跨帧状态
func (m *Muxer) writeAc3(frame base.AvFrame) (bool, error) {
	payload := frame.Payload
	nbSamples := frame.NbSamples

	if len(payload) < 6 || len(payload) > ac3BurstSize || nbSamples != ac3FrameNbSamples {
		// 输入没有按标准帧切分，回退到解析头部，拿到帧大小和采样点数
		ctx, err := a52.ParseHeader(payload)
		if err != nil {
			return false, base.NewErrSpdifMalformedFrame("parse ac3 header failed")
		}
		if ctx.IsEac3 || ctx.FrameSize > len(payload) {
			return false, base.NewErrSpdifMalformedFrame("not a plain ac3 frame")
		}
		payload = payload[:ctx.FrameSize]
		nbSamples = ctx.NbSamples
	}

	if len(payload)+headerSize > ac3BurstSize {
		return false, base.NewErrSpdifMalformedFrame("ac3 frame too large")
	}
	if err := m.writer.init(ac3BurstSize, frame, nbSamples); err != nil {
		return false, err
	}
	if err := m.writer.writeData(payload, true); err != nil {
		return false, err
	}
	// data type的bit 8-10为bsmod
	m.writer.finalize(dataTypeAc3|uint16(payload[5]&0x7)<<8, 8 /* 单位bit */)
	return true, nil
}
