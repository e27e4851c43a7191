package i18n

var english = catalog{
	MsgTitle:          "Reaction Time",
	MsgIdle:           "Press space to start",
	MsgIdleGoNoGo:     "Press space to start, then wait for green",
	MsgWaiting:        "Wait for it...",
	MsgCycling:        "Not yet...",
	MsgReady:          "Go!",
	MsgReadyGo:        "Green: press space",
	MsgReadyAlternate: "Red: press x",
	MsgReach:          "Now click the target",
	MsgResult:         "%d ms. Press space to continue",
	MsgResultReach:    "%d ms + %d ms movement. Press space to continue",
	MsgTooSoon:        "Too soon! Press space to retry",
	MsgWrongButton:    "Wrong button! Press space to retry",
	MsgWrongColor:     "Wrong color! Press space to retry",
	MsgModeSimple:     "Simple",
	MsgModeReach:      "Reach",
	MsgModeChoice:     "Choice",
	MsgModeGoNoGo:     "Go/No-Go",
	MsgColMode:        "Mode",
	MsgColCount:       "Trials",
	MsgColMean:        "Mean",
	MsgColBest:        "Best",
	MsgColStdDev:      "Std dev",
	MsgColErrors:      "Errors",
	MsgColMovement:    "Movement",
	MsgNoData:         "-",
	MsgHelp:           "space: trigger  x: alternate  1-4: mode  esc: reset  r: clear stats  q: quit",
	MsgStoreError:     "Could not save statistics: %v",
	MsgStatsReset:     "Statistics cleared",
}

var chinese = catalog{
	MsgTitle:          "反应时间测试",
	MsgIdle:           "按空格键开始",
	MsgIdleGoNoGo:     "按空格键开始，然后等待绿色",
	MsgWaiting:        "等待……",
	MsgCycling:        "还没到……",
	MsgReady:          "快！",
	MsgReadyGo:        "绿色：按空格键",
	MsgReadyAlternate: "红色：按 x 键",
	MsgReach:          "现在点击目标",
	MsgResult:         "%d 毫秒。按空格键继续",
	MsgResultReach:    "%d 毫秒 + 移动 %d 毫秒。按空格键继续",
	MsgTooSoon:        "太早了！按空格键重试",
	MsgWrongButton:    "按错键了！按空格键重试",
	MsgWrongColor:     "颜色不对！按空格键重试",
	MsgModeSimple:     "简单",
	MsgModeReach:      "伸手",
	MsgModeChoice:     "选择",
	MsgModeGoNoGo:     "Go/No-Go",
	MsgColMode:        "模式",
	MsgColCount:       "次数",
	MsgColMean:        "平均",
	MsgColBest:        "最佳",
	MsgColStdDev:      "标准差",
	MsgColErrors:      "错误",
	MsgColMovement:    "移动",
	MsgNoData:         "-",
	MsgHelp:           "空格：触发  x：备选  1-4：模式  esc：重置  r：清除统计  q：退出",
	MsgStoreError:     "无法保存统计数据：%v",
	MsgStatsReset:     "统计数据已清除",
}
