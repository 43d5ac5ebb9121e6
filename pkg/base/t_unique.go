// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/unique"

const (
	UkPreSpdifMuxer = "SPDIFMUXER"
)

func GenUkSpdifMuxer() string {
	return siUkSpdifMuxer.GenUniqueKey()
}

var (
	siUkSpdifMuxer *unique.SingleGenerator
)

func init() {
	siUkSpdifMuxer = unique.NewSingleGenerator(UkPreSpdifMuxer)
}
