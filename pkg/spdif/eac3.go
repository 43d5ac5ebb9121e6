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
	// E-AC3 burst固定为AC3 burst的4倍
	eac3BurstSize      = ac3BurstSize * 4
	eac3BurstNbSamples = eac3BurstSize / 4
)

// E-AC3帧大小不固定，每帧都重新解析头部。
//
// 当substream 0的independent（或AC3 convert）帧每个sync frame不足6个audio block时，
// 多个输入帧累积到同一个burst，substream 0的block数凑满6个才算完成，
// 见A/52 Annex E 2.3.1.2。其他substream的帧只写入缓冲，不参与block计数
func (m *Muxer) writeEac3(frame base.AvFrame) (bool, error) {
	ctx, err := a52.ParseHeader(frame.Payload)
	if err != nil {
		return false, base.NewErrSpdifMalformedFrame("parse eac3 header failed")
	}
	if ctx.FrameSize > len(frame.Payload) {
		return false, base.NewErrSpdifMalformedFrame("eac3 frame truncated")
	}
	payload := frame.Payload[:ctx.FrameSize]

	if !m.writer.inProgress() {
		if err = m.writer.init(eac3BurstSize, frame, eac3BurstNbSamples); err != nil {
			return false, err
		}
	}
	if len(payload) > m.writer.remaining() {
		return false, base.NewErrSpdifMalformedFrame("eac3 frame too large for burst")
	}

	if err = m.writer.writeData(payload, true); err != nil {
		return false, err
	}

	if !ctx.IsEac3 {
		// 独立的AC3兼容帧，继续等E-AC3帧
		return false, nil
	}

	if (ctx.StreamType == a52.StreamTypeIndependent || ctx.StreamType == a52.StreamTypeAc3Convert) &&
		ctx.NbBlocksPerSyncFrame != 6 {
		if ctx.SubstreamId == 0 {
			m.eac3NbBlocksSubstream0 += ctx.NbBlocksPerSyncFrame
		}

		if m.eac3NbBlocksSubstream0 != 6 {
			return false, nil
		}
		m.eac3NbBlocksSubstream0 = 0
	}
	m.writer.finalize(dataTypeEac3, 1 /* 单位字节 */)
	return true, nil
}
