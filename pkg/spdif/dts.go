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
	"github.com/q191201771/spdif/pkg/dts"
)

// 一帧输入对应一个burst，burst容量为采样点数*4。
//
// 帧大小刚好填满burst时（容器中已无burst头空间，比如DTS-in-WAV），
// 不写burst头，输出为裸帧
func (m *Muxer) writeDts(frame base.AvFrame) (bool, error) {
	payload := frame.Payload
	nbSamples := frame.NbSamples

	if len(payload) == 0 {
		return false, base.NewErrSpdifMalformedFrame("empty dts frame")
	}
	if nbSamples == 0 {
		// 输入没有按标准帧切分，回退到解析头部，拿到帧大小和采样点数
		ctx, err := dts.ParseHeader(payload)
		if err != nil {
			return false, base.NewErrSpdifMalformedFrame("parse dts header failed")
		}
		if ctx.FrameSize > len(payload) {
			return false, base.NewErrSpdifMalformedFrame("dts frame truncated")
		}
		payload = payload[:ctx.FrameSize]
		nbSamples = ctx.FrameLength
	}

	var dataType uint16
	switch nbSamples {
	case 512:
		dataType = dataTypeDts1
	case 1024:
		dataType = dataTypeDts2
	case 2048:
		dataType = dataTypeDts3
	default:
		Log.Errorf("[%s] dts frame size not supported. nbSamples=%d", m.UniqueKey, nbSamples)
		return false, base.NewErrSpdifMalformedFrame("dts frame size not supported")
	}

	capacity := nbSamples * 4
	if len(payload) == capacity {
		dataType = 0
	} else if len(payload)+headerSize > capacity {
		return false, base.NewErrSpdifMalformedFrame("dts frame too large")
	}

	if err := m.writer.init(capacity, frame, nbSamples); err != nil {
		return false, err
	}
	if dataType == 0 {
		m.writer.dropHeader()
	}

	if err := m.writer.writeData(payload, dtsIsBigEndian(payload)); err != nil {
		return false, err
	}
	m.writer.finalize(dataType, 8 /* 单位bit */)
	return true, nil
}

// DTS源数据的字节序由首字节判断，0x1F和0x7F是两种大端承载的sync marker首字节
func dtsIsBigEndian(payload []byte) bool {
	return payload[0] == 0x1F || payload[0] == 0x7F
}
