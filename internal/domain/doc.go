// Package domain models the forecast download wizard: the KMA region table,
// the forecast product catalog, the selection state machine, and the download
// request it produces.
//
// # Region Table
//
// Regions come from a CSV with the header
//
//	Level1,Level2,Level3,ReqList_Last
//
// where Level1 is a province or metropolitan city (시/도), Level2 a district
// (구/군) and Level3 a neighbourhood (동/읍/면). ReqList_Last is the KMA
// request code of the leaf. Rows without a Level1 are metadata and are
// dropped. Level3 names use a middle dot for compound neighbourhoods
// ("종로1·2·3·4가동"); it is replaced with "." at parse time.
//
// # Forecast Products
//
//	short               단기예보     3-day forecast, 12 elements
//	ultra-short         초단기예보   6-hour forecast, 10 elements
//	ultra-short-actual  초단기실황   current observations, 8 elements
//
// Element codes follow the KMA open API (TMP, WSD, VEC, SKY, REH, TMX, TMN,
// PTY, POP, UUU, VVV, PCP, SNO, LGT).
//
// # Wizard
//
// Selection is strictly linear:
//
//	forecast -> level1 -> level2 -> level3 -> variables
//
// Back clears exactly the field of the step being left; leaving variables
// also clears the variable set. See [Wizard].
//
// # Download
//
// The archive service is queried with city, district, town, one variable
// parameter per element and the fixed range [DownloadStart, DownloadEnd].
// The response is saved as "{town}_{start}_{end}.zip".
package domain
