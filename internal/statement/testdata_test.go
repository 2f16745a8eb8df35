package statement_test

// sampleStatement is a two-line export: a debit of 50,000 on 5 March and a credit of
// 200,000 on 10 March, with a footer that reconciles.
const sampleStatement = `No. rekening,=,'1234567890
Nama,=,JOHN DOE
Kode Mata Uang,=,IDR

Tanggal,Keterangan,Cabang,Jumlah,,Saldo
'05/03,TRSF E-BANKING DB 0503/FTSCY/WS95051 50000.00 JANE DOE,'0000,50000.00,DB,950000.00
'10/03,BI-FAST CR BIF TRANSFER DR 014 ACME CORP,'0000,200000.00,CR,1150000.00

Saldo Awal,=,1,000,000.00
Kredit,=,200,000.00
Debet,=,50,000.00
Saldo Akhir,=,1,150,000.00
`
