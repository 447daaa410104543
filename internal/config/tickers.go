package config

// DefaultTickers is the watch list used when the config file names none.
// Order and duplicates do not matter; the set is normalised at load.
var DefaultTickers = []string{
	"BTC-USD", "ETH-USD", "BNB-USD", "ADA-USD", "SOL-USD", "XRP-USD", "DOT-USD", "DOGE-USD",
	"UNI-USD", "LINK-USD", "LTC-USD", "BCH-USD", "XLM-USD", "VET-USD", "FIL-USD", "TRX-USD",
	"AVAX-USD", "MATIC-USD", "ATOM-USD", "FTT-USD", "ALGO-USD", "ICP-USD", "AXS-USD", "XTZ-USD",
	"AAVE-USD", "EGLD-USD", "SAND-USD", "MANA-USD", "THETA-USD", "FTM-USD", "GRT-USD", "NEAR-USD",
	"KSM-USD", "CAKE-USD", "RUNE-USD", "CELO-USD", "HNT-USD", "ONE-USD", "BTT-USD", "ENJ-USD",
	"CHZ-USD", "YFI-USD", "SUSHI-USD", "CRV-USD", "ZIL-USD", "DGB-USD", "WAVES-USD", "OMG-USD",
	"QTUM-USD", "ONT-USD", "ZRX-USD", "ICX-USD", "HOT-USD", "BNT-USD", "ZEN-USD", "RSR-USD",
	"KAVA-USD", "LRC-USD", "SNX-USD", "STMX-USD", "SKL-USD", "OCEAN-USD", "ANKR-USD", "CEL-USD",
	"AR-USD", "TWT-USD", "REN-USD", "1INCH-USD", "GALA-USD", "PERP-USD", "BAL-USD", "COMP-USD",
	"STORJ-USD", "COTI-USD", "RNDR-USD", "IMX-USD", "DENT-USD", "BAND-USD", "C98-USD", "XYO-USD",
	"MDX-USD", "REQ-USD", "HIVE-USD", "SYS-USD", "ALICE-USD", "KLAY-USD", "CVC-USD", "CTSI-USD",
	"RLC-USD", "MKR-USD", "SXP-USD", "FET-USD", "NKN-USD", "STRAX-USD", "LPT-USD", "NMR-USD",
	"DIA-USD", "MTL-USD", "XVG-USD", "BTS-USD", "WIN-USD", "XVS-USD", "PAXG-USD", "MASK-USD",
	"BADGER-USD", "PHA-USD", "POLY-USD", "MLN-USD", "SLP-USD", "FORTH-USD", "CTK-USD", "LINA-USD",
	"ANT-USD", "DOCK-USD", "NULS-USD", "SUN-USD", "TROY-USD", "XED-USD", "BOND-USD", "DODO-USD",
	"ROSE-USD", "AUCTION-USD", "MDT-USD", "BUSD-USD", "AKRO-USD", "TRIBE-USD", "CTXC-USD", "FARM-USD",
	"DF-USD", "OM-USD", "UBT-USD", "PSG-USD", "ATM-USD", "PORTO-USD", "CITY-USD", "JUV-USD", "OG-USD",
	"ACM-USD", "ASR-USD", "BAR-USD", "AFC-USD", "INTER-USD", "GAL-USD", "SAUBER-USD", "TPT-USD",
	"REI-USD", "ALPINE-USD", "TLM-USD", "ARDR-USD", "OXT-USD", "POWR-USD", "GLM-USD", "LIT-USD",
	"AVA-USD", "XNO-USD", "VIDT-USD", "DEXE-USD", "POND-USD", "UNFI-USD", "UBX-USD", "FIDA-USD",
	"NBS-USD", "SUPER-USD", "RIF-USD", "STPT-USD", "WTC-USD", "PNT-USD", "BLZ-USD", "MBOX-USD",
	"IDEX-USD", "JASMY-USD", "TVK-USD", "KP3R-USD", "QNT-USD", "DUSK-USD", "CFG-USD", "AKT-USD",
	"LTO-USD", "ARK-USD", "TOMOE-USD", "KEEP-USD", "KNC-USD", "MIR-USD", "BIFI-USD", "BMI-USD",
	"DNT-USD", "RGT-USD", "RAY-USD", "BOR-USD", "ALPHA-USD", "POLS-USD", "MDA-USD", "SWFTC-USD",
	"KAI-USD", "MFT-USD", "MITH-USD", "SOLO-USD", "AMPL-USD", "WNXM-USD", "MHC-USD", "AION-USD",
	"CND-USD", "XWC-USD", "SOUL-USD", "IOTX-USD", "TOMO-USD", "PEAK-USD", "XEM-USD", "WICC-USD",
}
